package services

import (
	"encoding/json"

	"turbo/contexts/commerce/order-service/domain/entities"
	"turbo/internal/shared/events"
)

// EventTypeOrderPlaced is emitted exactly once per successful checkout.
const EventTypeOrderPlaced = "order.placed"

// orderPlacedPayload is the stable wire shape of the checkout event.
type orderPlacedPayload struct {
	OrderID     string `json:"order_id"`
	Owner       string `json:"owner"`
	TotalAmount string `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
}

// OrderPlacedEnvelope builds the event recorded alongside a checkout.
// The envelope is constructed from the post-checkout order so the payload
// carries the frozen total.
func OrderPlacedEnvelope(eventID, sourceService string, order entities.Order) (events.Envelope, error) {
	payload, err := json.Marshal(orderPlacedPayload{
		OrderID:     order.OrderID,
		Owner:       order.Owner,
		TotalAmount: order.TotalAmount.StringFixed(2),
		ItemCount:   len(order.Items),
	})
	if err != nil {
		return events.Envelope{}, err
	}
	return events.Envelope{
		EventID:       eventID,
		EventType:     EventTypeOrderPlaced,
		SourceService: sourceService,
		OccurredAtUTC: order.UpdatedAt.UTC(),
		EntityType:    "order",
		EntityID:      order.OrderID,
		Payload:       payload,
	}, nil
}
