package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mvs/product-catalog/internal/core/domain"
)

const productCacheTTL = 5 * time.Minute

// ProductCache is a read-through cache for products backed by Redis.
// Key format: product:<uuid>, JSON values.
type ProductCache struct {
	client *redis.Client
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// Get returns the cached product, or (nil, nil) on a miss.
func (p *ProductCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := p.client.Get(ctx, p.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &product, nil
}

// Set stores the product (expires after productCacheTTL).
func (p *ProductCache) Set(ctx context.Context, product *domain.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return p.client.Set(ctx, p.key(product.ID), raw, productCacheTTL).Err()
}

// Invalidate drops the cache entry after a mutation.
func (p *ProductCache) Invalidate(ctx context.Context, id string) error {
	return p.client.Del(ctx, p.key(id)).Err()
}

func (p *ProductCache) key(id string) string {
	return "product:" + id
}
