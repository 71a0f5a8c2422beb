package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"turbo/contexts/commerce/catalog-service/domain/entities"
	domainerrors "turbo/contexts/commerce/catalog-service/domain/errors"
	"turbo/contexts/commerce/catalog-service/ports"

	"github.com/shopspring/decimal"
)

type Service struct {
	Repo          ports.Repository
	PriceCache    ports.PriceCache
	Clock         ports.Clock
	IDs           ports.IDGenerator
	PriceCacheTTL time.Duration
	Logger        *slog.Logger
}

// ProductInput carries the product payload after transport decoding.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

func (s Service) CreateProduct(ctx context.Context, input ProductInput) (entities.Product, error) {
	logger := ResolveLogger(s.Logger)

	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price.IsNegative() {
		return entities.Product{}, domainerrors.ErrInvalidProduct
	}

	productID, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.Product{}, err
	}
	now := s.now()
	product := entities.Product{
		ProductID:   productID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return entities.Product{}, err
	}

	logger.Info("product created",
		"event", "catalog_product_created",
		"module", "commerce/catalog-service",
		"layer", "application",
		"product_id", product.ProductID,
		"price", product.Price.String(),
	)
	return product, nil
}

func (s Service) UpdateProduct(ctx context.Context, productID string, input ProductInput) (entities.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return entities.Product{}, domainerrors.ErrInvalidProduct
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price.IsNegative() {
		return entities.Product{}, domainerrors.ErrInvalidProduct
	}

	existing, found, err := s.Repo.GetProduct(ctx, strings.TrimSpace(productID))
	if err != nil {
		return entities.Product{}, err
	}
	if !found {
		return entities.Product{}, domainerrors.ErrProductNotFound
	}

	existing.Name = name
	existing.Description = strings.TrimSpace(input.Description)
	existing.Price = input.Price
	existing.UpdatedAt = s.now()
	if err := s.Repo.UpdateProduct(ctx, existing); err != nil {
		return entities.Product{}, err
	}
	s.invalidatePrice(ctx, existing.ProductID)
	return existing, nil
}

func (s Service) DeleteProduct(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return domainerrors.ErrInvalidProduct
	}
	if err := s.Repo.DeleteProduct(ctx, strings.TrimSpace(productID)); err != nil {
		return err
	}
	s.invalidatePrice(ctx, strings.TrimSpace(productID))
	return nil
}

func (s Service) GetProduct(ctx context.Context, productID string) (entities.Product, error) {
	product, found, err := s.Repo.GetProduct(ctx, strings.TrimSpace(productID))
	if err != nil {
		return entities.Product{}, err
	}
	if !found {
		return entities.Product{}, domainerrors.ErrProductNotFound
	}
	return product, nil
}

func (s Service) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// GetUnitPrice is the pricing collaborator consumed by the order engine.
// Cache-first; misses fall through to the repository and backfill the cache.
func (s Service) GetUnitPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	logger := ResolveLogger(s.Logger)
	now := s.now()

	if s.PriceCache != nil {
		price, hit, err := s.PriceCache.Get(ctx, productID, now)
		if err == nil && hit {
			return price, nil
		}
		if err != nil {
			logger.Warn("price cache read failed",
				"event", "catalog_price_cache_failed",
				"module", "commerce/catalog-service",
				"layer", "application",
				"product_id", productID,
				"error", err.Error(),
			)
		}
	}

	product, found, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !found {
		return decimal.Decimal{}, domainerrors.ErrProductNotFound
	}

	if s.PriceCache != nil {
		_ = s.PriceCache.Set(ctx, productID, product.Price, now.Add(s.cacheTTL()))
	}
	return product.Price, nil
}

func (s Service) invalidatePrice(ctx context.Context, productID string) {
	if s.PriceCache != nil {
		_ = s.PriceCache.Invalidate(ctx, productID)
	}
}

func (s Service) cacheTTL() time.Duration {
	if s.PriceCacheTTL <= 0 {
		return 5 * time.Minute
	}
	return s.PriceCacheTTL
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
