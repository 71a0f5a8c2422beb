package queries

import (
	"context"

	"turbo/contexts/commerce/order-service/domain/entities"
	"turbo/contexts/commerce/order-service/ports"
)

// GetOrderQuery fetches one order on behalf of its owner.
type GetOrderQuery struct {
	Owner   string
	OrderID string
}

// GetOrderUseCase reads a single order with ownership filtering.
type GetOrderUseCase struct {
	Repository ports.Repository
}

// Execute returns the order only when it belongs to the caller. An
// order owned by someone else is indistinguishable from a missing one.
func (u GetOrderUseCase) Execute(ctx context.Context, query GetOrderQuery) (entities.Order, bool, error) {
	order, found, err := u.Repository.GetOrder(ctx, query.OrderID)
	if err != nil || !found {
		return entities.Order{}, false, err
	}
	if order.Owner != query.Owner {
		return entities.Order{}, false, nil
	}
	return order, true, nil
}
