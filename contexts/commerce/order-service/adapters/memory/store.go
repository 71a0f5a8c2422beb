package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"turbo/contexts/commerce/order-service/domain/entities"
	domainerrors "turbo/contexts/commerce/order-service/domain/errors"
	"turbo/contexts/commerce/order-service/domain/services"
	"turbo/contexts/commerce/order-service/ports"
	"turbo/internal/shared/outbox"
)

type outboxRow struct {
	message     outbox.Message
	publishedAt *time.Time
}

// Store is an in-memory order repository for local runs and tests. One
// mutex serializes every cart transaction, which is exactly the
// exclusion MutateActiveCart promises.
type Store struct {
	mu          sync.Mutex
	orders      map[string]entities.Order
	activeCarts map[string]string
	outbox      map[string]outboxRow
	outboxOrder []string
}

func NewStore() *Store {
	return &Store{
		orders:      make(map[string]entities.Order),
		activeCarts: make(map[string]string),
		outbox:      make(map[string]outboxRow),
	}
}

var (
	_ ports.Repository       = (*Store)(nil)
	_ ports.OutboxRepository = (*Store)(nil)
	_ ports.Clock            = (*Store)(nil)
	_ ports.IDGenerator      = (*Store)(nil)
)

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) MutateActiveCart(ctx context.Context, input ports.MutateCartInput, mutate func(order *entities.Order) error) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cart entities.Order
	orderID, ok := s.activeCarts[input.Owner]
	if ok {
		cart = s.orders[orderID].Clone()
	} else {
		if input.Seed == nil {
			return entities.Order{}, domainerrors.ErrCartNotFound
		}
		cart = input.Seed.Clone()
		cart.Status = entities.StatusPending
	}

	if err := mutate(&cart); err != nil {
		return entities.Order{}, err
	}

	s.orders[cart.OrderID] = cart.Clone()
	if cart.Active() {
		s.activeCarts[cart.Owner] = cart.OrderID
	} else {
		delete(s.activeCarts, cart.Owner)
	}

	if input.Outbox != nil {
		if err := s.appendOutbox(*input.Outbox, cart); err != nil {
			return entities.Order{}, err
		}
	}
	return cart.Clone(), nil
}

func (s *Store) appendOutbox(spec ports.OutboxSpec, order entities.Order) error {
	envelope, err := services.OrderPlacedEnvelope(spec.EventID, spec.SourceService, order)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.outbox[spec.OutboxID] = outboxRow{message: outbox.Message{
		ID:        spec.OutboxID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    "pending",
	}}
	s.outboxOrder = append(s.outboxOrder, spec.OutboxID)
	return nil
}

func (s *Store) FindActiveCart(ctx context.Context, owner string) (entities.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID, ok := s.activeCarts[owner]
	if !ok {
		return entities.Order{}, false, nil
	}
	return s.orders[orderID].Clone(), true, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (entities.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, false, nil
	}
	return order.Clone(), true, nil
}

func (s *Store) ListOrdersByOwner(ctx context.Context, owner string) ([]entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []entities.Order
	for _, order := range s.orders {
		if order.Owner == owner {
			result = append(result, order.Clone())
		}
	}
	sortOrders(result)
	return result, nil
}

func (s *Store) ListAllOrders(ctx context.Context) ([]entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]entities.Order, 0, len(s.orders))
	for _, order := range s.orders {
		result = append(result, order.Clone())
	}
	sortOrders(result)
	return result, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status entities.Status, now time.Time) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	order = order.Clone()
	order.Status = status
	order.UpdatedAt = now

	s.orders[orderID] = order.Clone()
	if order.Active() {
		s.activeCarts[order.Owner] = order.OrderID
	} else if s.activeCarts[order.Owner] == order.OrderID {
		delete(s.activeCarts, order.Owner)
	}
	return order, nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []outbox.Message
	for _, id := range s.outboxOrder {
		row := s.outbox[id]
		if row.publishedAt != nil {
			continue
		}
		pending = append(pending, row.message)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	at := publishedAt
	row.publishedAt = &at
	row.message.Status = "published"
	s.outbox[outboxID] = row
	return nil
}

// sortOrders keeps listings deterministic: newest first, ties broken by id.
func sortOrders(orders []entities.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].OrderID < orders[j].OrderID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
