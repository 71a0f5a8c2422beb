package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"turbo/contexts/commerce/catalog-service/domain/entities"
	domainerrors "turbo/contexts/commerce/catalog-service/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is an in-memory adapter implementing repository/cache/clock/idgen
// ports. It is intended for tests and local development wiring.
type Store struct {
	mu       sync.RWMutex
	products map[string]entities.Product
	prices   map[string]cacheEntry
}

type cacheEntry struct {
	Price     decimal.Decimal
	ExpiresAt time.Time
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]entities.Product),
		prices:   make(map[string]cacheEntry),
	}
}

func (s *Store) CreateProduct(_ context.Context, product entities.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ProductID] = product
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, product entities.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ProductID]; !ok {
		return domainerrors.ErrProductNotFound
	}
	s.products[product.ProductID] = product
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return domainerrors.ErrProductNotFound
	}
	delete(s.products, productID)
	return nil
}

func (s *Store) GetProduct(_ context.Context, productID string) (entities.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[productID]
	return product, ok, nil
}

func (s *Store) ListProducts(context.Context) ([]entities.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Product, 0, len(s.products))
	for _, product := range s.products {
		items = append(items, product)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) Get(_ context.Context, productID string, now time.Time) (decimal.Decimal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.prices[productID]
	if !ok || !entry.ExpiresAt.After(now) {
		return decimal.Decimal{}, false, nil
	}
	return entry.Price, true, nil
}

func (s *Store) Set(_ context.Context, productID string, price decimal.Decimal, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[productID] = cacheEntry{Price: price, ExpiresAt: expiresAt}
	return nil
}

func (s *Store) Invalidate(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prices, productID)
	return nil
}

func (s *Store) Now() time.Time { return time.Now().UTC() }

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}
