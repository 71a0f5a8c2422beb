package queries

import (
	"context"

	"turbo/contexts/commerce/order-service/domain/entities"
	"turbo/contexts/commerce/order-service/ports"
)

// GetActiveCartQuery fetches the caller's open cart.
type GetActiveCartQuery struct {
	Owner string
}

// GetActiveCartUseCase reads the owner's PENDING order.
type GetActiveCartUseCase struct {
	Repository ports.Repository
}

// Execute returns the open cart when one exists. Absence is reported
// through the boolean, not as an error.
func (u GetActiveCartUseCase) Execute(ctx context.Context, query GetActiveCartQuery) (entities.Order, bool, error) {
	return u.Repository.FindActiveCart(ctx, query.Owner)
}
