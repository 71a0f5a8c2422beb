package redisadapter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const priceKeyPrefix = "catalog:price:"

// PriceCache implements ports.PriceCache on a shared Redis instance so every
// API process sees the same freshness window.
type PriceCache struct {
	client *redis.Client
}

func NewPriceCache(addr string) (*PriceCache, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	return &PriceCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}, nil
}

func (c *PriceCache) Get(ctx context.Context, productID string, _ time.Time) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, priceKeyPrefix+productID).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Decimal{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return price, true, nil
}

func (c *PriceCache) Set(ctx context.Context, productID string, price decimal.Decimal, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, priceKeyPrefix+productID, price.String(), ttl).Err()
}

func (c *PriceCache) Invalidate(ctx context.Context, productID string) error {
	return c.client.Del(ctx, priceKeyPrefix+productID).Err()
}

func (c *PriceCache) Close() error {
	return c.client.Close()
}
