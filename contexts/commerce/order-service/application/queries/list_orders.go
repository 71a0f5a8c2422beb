package queries

import (
	"context"

	"turbo/contexts/commerce/order-service/domain/entities"
	"turbo/contexts/commerce/order-service/ports"
)

// ListOrdersQuery fetches the caller's order history.
type ListOrdersQuery struct {
	Owner string
}

// ListOrdersUseCase reads every order, open cart included, for one owner.
type ListOrdersUseCase struct {
	Repository ports.Repository
}

func (u ListOrdersUseCase) Execute(ctx context.Context, query ListOrdersQuery) ([]entities.Order, error) {
	return u.Repository.ListOrdersByOwner(ctx, query.Owner)
}
