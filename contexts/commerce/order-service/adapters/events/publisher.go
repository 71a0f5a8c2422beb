package events

import (
	"context"
	"log/slog"

	"turbo/contexts/commerce/order-service/ports"
	"turbo/internal/platform/messaging"
	sharedevents "turbo/internal/shared/events"
)

// TopicOrders carries order lifecycle events.
const TopicOrders = "commerce.orders"

// Publisher delivers order events onto the in-process bus.
type Publisher struct {
	bus    *messaging.Bus
	logger *slog.Logger
}

func NewPublisher(bus *messaging.Bus, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{bus: bus, logger: logger}
}

var _ ports.OrderEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishOrderEvent(ctx context.Context, event sharedevents.Envelope) error {
	if err := p.bus.Publish(ctx, TopicOrders, event); err != nil {
		return err
	}
	p.logger.Info("order event published",
		"event", "order_event_published",
		"module", "commerce/order-service",
		"layer", "adapter",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"entity_id", event.EntityID,
	)
	return nil
}
