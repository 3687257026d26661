package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const priceCacheKeyPrefix = "price"

// PriceCache is a Redis read-through cache in front of the upstream price API.
// Prices are stored as decimal strings so no precision is lost round-tripping.
// Key format: "price:{productName}".
type PriceCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewPriceCache creates a PriceCache backed by the given RedisClient.
func NewPriceCache(r *RedisClient, ttl time.Duration) *PriceCache {
	return &PriceCache{client: r, ttl: ttl}
}

// Get retrieves a cached price by product name.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *PriceCache) Get(ctx context.Context, productName string) (decimal.Decimal, error) {
	val, err := c.client.Client().Get(ctx, c.key(productName)).Result()
	if err != nil {
		if err == redis.Nil {
			return decimal.Decimal{}, redis.Nil
		}
		return decimal.Decimal{}, fmt.Errorf("price cache get: %w", err)
	}

	price, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price cache parse %q: %w", val, err)
	}
	return price, nil
}

// Set stores a price with the configured TTL.
func (c *PriceCache) Set(ctx context.Context, productName string, price decimal.Decimal) error {
	if err := c.client.Client().Set(ctx, c.key(productName), price.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("price cache set: %w", err)
	}
	return nil
}

// Delete removes a cached price.
func (c *PriceCache) Delete(ctx context.Context, productName string) error {
	if err := c.client.Client().Del(ctx, c.key(productName)).Err(); err != nil {
		return fmt.Errorf("price cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "price:{productName}"
func (c *PriceCache) key(productName string) string {
	return fmt.Sprintf("%s:%s", priceCacheKeyPrefix, productName)
}
