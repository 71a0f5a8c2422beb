package queries

import (
	"context"

	"turbo/contexts/commerce/order-service/domain/entities"
	"turbo/contexts/commerce/order-service/ports"
)

// ListAllOrdersUseCase is the administrative view across all owners.
type ListAllOrdersUseCase struct {
	Repository ports.Repository
}

func (u ListAllOrdersUseCase) Execute(ctx context.Context) ([]entities.Order, error) {
	return u.Repository.ListAllOrders(ctx)
}
