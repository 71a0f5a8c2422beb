package orders

import (
	"log/slog"

	httpadapter "turbo/contexts/commerce/order-service/adapters/http"
	"turbo/contexts/commerce/order-service/adapters/memory"
	"turbo/contexts/commerce/order-service/application/commands"
	"turbo/contexts/commerce/order-service/application/queries"
	"turbo/contexts/commerce/order-service/application/workers"
	"turbo/contexts/commerce/order-service/ports"
)

// ServiceName identifies this module as an event source.
const ServiceName = "order-service"

// Module is the order-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Outbox      ports.OutboxRepository
	Pricing     ports.PriceLookup
	Publisher   ports.OrderEventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the cart/order use-cases and transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	addItem := commands.AddItemUseCase{
		Repository:  deps.Repository,
		Pricing:     deps.Pricing,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateItem := commands.UpdateItemQuantityUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	removeItem := commands.RemoveItemUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	checkout := commands.CheckoutUseCase{
		Repository:    deps.Repository,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		SourceService: ServiceName,
		Logger:        deps.Logger,
	}
	updateStatus := commands.UpdateStatusUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			AddItem:       addItem,
			UpdateItem:    updateItem,
			RemoveItem:    removeItem,
			Checkout:      checkout,
			UpdateStatus:  updateStatus,
			GetActiveCart: queries.GetActiveCartUseCase{Repository: deps.Repository},
			GetOrder:      queries.GetOrderUseCase{Repository: deps.Repository},
			ListOrders:    queries.ListOrdersUseCase{Repository: deps.Repository},
			ListAllOrders: queries.ListAllOrdersUseCase{Repository: deps.Repository},
			Logger:        deps.Logger,
		},
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(pricing ports.PriceLookup, publisher ports.OrderEventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Outbox:      store,
		Pricing:     pricing,
		Publisher:   publisher,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
