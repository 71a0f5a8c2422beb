package commands

import (
	"context"
	"log/slog"
	"strings"

	application "turbo/contexts/commerce/order-service/application"
	"turbo/contexts/commerce/order-service/domain/entities"
	domainerrors "turbo/contexts/commerce/order-service/domain/errors"
	"turbo/contexts/commerce/order-service/ports"
)

// AddItemCommand contains transport-agnostic input for adding a product
// to the caller's cart.
type AddItemCommand struct {
	Owner     string
	ProductID string
	Quantity  int
}

// AddItemUseCase coordinates the find-or-create cart flow with price
// snapshotting.
type AddItemUseCase struct {
	Repository  ports.Repository
	Pricing     ports.PriceLookup
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute resolves the current catalog price, then merges the product
// into the PENDING cart, creating the cart when none exists. Adding a
// product already in the cart increments its quantity; the unit price
// stays at the original snapshot.
func (u AddItemUseCase) Execute(ctx context.Context, cmd AddItemCommand) (entities.Order, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.ProductID) == "" {
		return entities.Order{}, domainerrors.ErrInvalidProductRef
	}
	if cmd.Quantity <= 0 {
		return entities.Order{}, domainerrors.ErrInvalidQuantity
	}

	unitPrice, found, err := u.Pricing.UnitPrice(ctx, cmd.ProductID)
	if err != nil {
		logger.Error("cart add price lookup failed",
			"event", "order_add_item_price_lookup_failed",
			"module", "commerce/order-service",
			"layer", "application",
			"owner", cmd.Owner,
			"product_id", cmd.ProductID,
			"error", err.Error(),
		)
		return entities.Order{}, err
	}
	if !found {
		return entities.Order{}, domainerrors.ErrProductNotFound
	}

	seedID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Order{}, err
	}
	now := u.Clock.Now().UTC()
	seed := entities.Order{
		OrderID:   seedID,
		Owner:     cmd.Owner,
		Status:    entities.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	order, err := u.Repository.MutateActiveCart(ctx, ports.MutateCartInput{
		Owner: cmd.Owner,
		Seed:  &seed,
	}, func(order *entities.Order) error {
		if idx, ok := order.FindItem(cmd.ProductID); ok {
			order.Items[idx].Quantity += cmd.Quantity
		} else {
			order.Items = append(order.Items, entities.LineItem{
				ProductID: cmd.ProductID,
				Quantity:  cmd.Quantity,
				UnitPrice: unitPrice,
			})
		}
		order.RecomputeTotal()
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	logger.Info("cart item added",
		"event", "order_item_added",
		"module", "commerce/order-service",
		"layer", "application",
		"owner", cmd.Owner,
		"order_id", order.OrderID,
		"product_id", cmd.ProductID,
		"quantity", cmd.Quantity,
	)
	return order, nil
}
