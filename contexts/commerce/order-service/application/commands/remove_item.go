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

// RemoveItemCommand drops one product from the caller's cart.
type RemoveItemCommand struct {
	Owner     string
	ProductID string
}

// RemoveItemUseCase deletes a line item from the open cart.
type RemoveItemUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute removes the line and recomputes the total. Removing the last
// line leaves an empty PENDING cart rather than deleting the order.
func (u RemoveItemUseCase) Execute(ctx context.Context, cmd RemoveItemCommand) (entities.Order, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.ProductID) == "" {
		return entities.Order{}, domainerrors.ErrInvalidProductRef
	}

	now := u.Clock.Now().UTC()
	order, err := u.Repository.MutateActiveCart(ctx, ports.MutateCartInput{Owner: cmd.Owner}, func(order *entities.Order) error {
		idx, ok := order.FindItem(cmd.ProductID)
		if !ok {
			return domainerrors.ErrItemNotFound
		}
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
		order.RecomputeTotal()
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	logger.Info("cart item removed",
		"event", "order_item_removed",
		"module", "commerce/order-service",
		"layer", "application",
		"owner", cmd.Owner,
		"order_id", order.OrderID,
		"product_id", cmd.ProductID,
	)
	return order, nil
}
