package catalog

import (
	"log/slog"
	"time"

	httpadapter "turbo/contexts/commerce/catalog-service/adapters/http"
	"turbo/contexts/commerce/catalog-service/adapters/memory"
	"turbo/contexts/commerce/catalog-service/application"
	"turbo/contexts/commerce/catalog-service/ports"
)

// Module is the catalog-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	// Pricing is the collaborator handed to the order engine.
	Pricing application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository    ports.Repository
	PriceCache    ports.PriceCache
	Clock         ports.Clock
	IDs           ports.IDGenerator
	PriceCacheTTL time.Duration
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:          deps.Repository,
		PriceCache:    deps.PriceCache,
		Clock:         deps.Clock,
		IDs:           deps.IDs,
		PriceCacheTTL: deps.PriceCacheTTL,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Pricing: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:    store,
		PriceCache:    store,
		Clock:         store,
		IDs:           store,
		PriceCacheTTL: 5 * time.Minute,
		Logger:        logger,
	})
	module.Store = store
	return module
}
