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

// UpdateItemQuantityCommand replaces the quantity of one cart line.
type UpdateItemQuantityCommand struct {
	Owner     string
	ProductID string
	Quantity  int
}

// UpdateItemQuantityUseCase adjusts a line item inside the open cart.
// A target quantity of zero or less removes the line entirely.
type UpdateItemQuantityUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute replaces the line quantity and recomputes the total. The cart
// and the line must already exist; quantities never go below one via
// this path because non-positive targets degrade to removal.
func (u UpdateItemQuantityUseCase) Execute(ctx context.Context, cmd UpdateItemQuantityCommand) (entities.Order, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.ProductID) == "" {
		return entities.Order{}, domainerrors.ErrInvalidProductRef
	}
	if cmd.Quantity <= 0 {
		remove := RemoveItemUseCase{Repository: u.Repository, Clock: u.Clock, Logger: u.Logger}
		return remove.Execute(ctx, RemoveItemCommand{Owner: cmd.Owner, ProductID: cmd.ProductID})
	}

	now := u.Clock.Now().UTC()
	order, err := u.Repository.MutateActiveCart(ctx, ports.MutateCartInput{Owner: cmd.Owner}, func(order *entities.Order) error {
		idx, ok := order.FindItem(cmd.ProductID)
		if !ok {
			return domainerrors.ErrItemNotFound
		}
		order.Items[idx].Quantity = cmd.Quantity
		order.RecomputeTotal()
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	logger.Info("cart item quantity updated",
		"event", "order_item_quantity_updated",
		"module", "commerce/order-service",
		"layer", "application",
		"owner", cmd.Owner,
		"order_id", order.OrderID,
		"product_id", cmd.ProductID,
		"quantity", cmd.Quantity,
	)
	return order, nil
}
