package commands

import (
	"context"
	"log/slog"

	application "turbo/contexts/commerce/order-service/application"
	"turbo/contexts/commerce/order-service/domain/entities"
	domainerrors "turbo/contexts/commerce/order-service/domain/errors"
	"turbo/contexts/commerce/order-service/ports"
)

// UpdateStatusCommand is the administrative status override.
type UpdateStatusCommand struct {
	OrderID string
	Status  string
}

// UpdateStatusUseCase sets an order's status to any known value. The
// lifecycle set is validated but transitions between its members are
// not restricted on this path.
type UpdateStatusUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute applies the new status to the identified order.
func (u UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (entities.Order, error) {
	logger := application.ResolveLogger(u.Logger)

	status, ok := entities.ParseStatus(cmd.Status)
	if !ok {
		return entities.Order{}, domainerrors.ErrInvalidStatus
	}

	now := u.Clock.Now().UTC()
	order, err := u.Repository.UpdateOrderStatus(ctx, cmd.OrderID, status, now)
	if err != nil {
		return entities.Order{}, err
	}

	logger.Info("order status updated",
		"event", "order_status_updated",
		"module", "commerce/order-service",
		"layer", "application",
		"order_id", cmd.OrderID,
		"status", string(status),
	)
	return order, nil
}
