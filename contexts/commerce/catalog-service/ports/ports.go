package ports

import (
	"context"
	"time"

	"turbo/contexts/commerce/catalog-service/domain/entities"

	"github.com/shopspring/decimal"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new products.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PriceCache stores unit prices with TTL semantics in front of the repository.
type PriceCache interface {
	Get(ctx context.Context, productID string, now time.Time) (decimal.Decimal, bool, error)
	Set(ctx context.Context, productID string, price decimal.Decimal, expiresAt time.Time) error
	Invalidate(ctx context.Context, productID string) error
}

// Repository is the persistence boundary for catalog state.
type Repository interface {
	CreateProduct(ctx context.Context, product entities.Product) error
	UpdateProduct(ctx context.Context, product entities.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (entities.Product, bool, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
}
