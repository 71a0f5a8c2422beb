package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"turbo/contexts/commerce/order-service/domain/entities"
	"turbo/internal/shared/events"
	"turbo/internal/shared/outbox"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces identifiers for orders, events and outbox rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PriceLookup resolves the current catalog unit price for a product.
// The returned price is snapshotted onto the line item; later catalog
// changes never touch existing items.
type PriceLookup interface {
	UnitPrice(ctx context.Context, productID string) (decimal.Decimal, bool, error)
}

// OutboxSpec asks the repository to record an order.placed event in the
// same transaction as the cart mutation. The envelope is built from the
// post-mutation order state.
type OutboxSpec struct {
	OutboxID      string
	EventID       string
	SourceService string
}

// MutateCartInput drives a single-cart transaction.
//
// Seed, when non-nil, is created as the owner's cart if no PENDING order
// exists; a nil Seed makes a missing cart an ErrCartNotFound. Outbox,
// when non-nil, is persisted atomically with the mutated order.
type MutateCartInput struct {
	Owner  string
	Seed   *entities.Order
	Outbox *OutboxSpec
}

// Repository is the persistence boundary for orders.
//
// MutateActiveCart loads the owner's PENDING order under exclusion,
// applies mutate to it and persists the result as one atomic step. The
// single-writer discipline is what keeps one PENDING cart per owner.
type Repository interface {
	MutateActiveCart(ctx context.Context, input MutateCartInput, mutate func(order *entities.Order) error) (entities.Order, error)
	FindActiveCart(ctx context.Context, owner string) (entities.Order, bool, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, bool, error)
	ListOrdersByOwner(ctx context.Context, owner string) ([]entities.Order, error)
	ListAllOrders(ctx context.Context) ([]entities.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.Status, now time.Time) (entities.Order, error)
}

// OutboxRepository is the relay's view of stored events.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// OrderEventPublisher delivers order lifecycle events to the bus.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event events.Envelope) error
}
