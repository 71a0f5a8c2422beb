package commands

import (
	"context"
	"log/slog"

	application "turbo/contexts/commerce/order-service/application"
	"turbo/contexts/commerce/order-service/domain/entities"
	domainerrors "turbo/contexts/commerce/order-service/domain/errors"
	"turbo/contexts/commerce/order-service/ports"
)

// CheckoutCommand converts the caller's cart into a placed order.
type CheckoutCommand struct {
	Owner string
}

// CheckoutUseCase performs the only transition out of PENDING. The
// status change and the order.placed outbox row commit in the same
// transaction.
type CheckoutUseCase struct {
	Repository    ports.Repository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	SourceService string
	Logger        *slog.Logger
}

// Execute places the cart. An empty cart is rejected and stays PENDING;
// after success the order's items and total are frozen.
func (u CheckoutUseCase) Execute(ctx context.Context, cmd CheckoutCommand) (entities.Order, error) {
	logger := application.ResolveLogger(u.Logger)

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Order{}, err
	}
	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Order{}, err
	}

	now := u.Clock.Now().UTC()
	order, err := u.Repository.MutateActiveCart(ctx, ports.MutateCartInput{
		Owner: cmd.Owner,
		Outbox: &ports.OutboxSpec{
			OutboxID:      outboxID,
			EventID:       eventID,
			SourceService: u.sourceService(),
		},
	}, func(order *entities.Order) error {
		if len(order.Items) == 0 {
			return domainerrors.ErrEmptyCart
		}
		order.Status = entities.StatusPlaced
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	logger.Info("order placed",
		"event", "order_placed",
		"module", "commerce/order-service",
		"layer", "application",
		"owner", cmd.Owner,
		"order_id", order.OrderID,
		"total_amount", order.TotalAmount.StringFixed(2),
	)
	return order, nil
}

func (u CheckoutUseCase) sourceService() string {
	if u.SourceService == "" {
		return "order-service"
	}
	return u.SourceService
}
