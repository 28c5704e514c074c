package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/storefront/storefront/internal/model"
)

const productKeyPrefix = "product:"

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// GetProduct retrieves a product by id.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	result, err := c.client.HGetAll(ctx, productKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	return productFromHash(id, result)
}

// SetProduct stores a product with the configured TTL.
func (c *Cache) SetProduct(ctx context.Context, p *model.Product) error {
	key := productKey(p.ID)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, productToHash(p))
	pipe.Expire(ctx, key, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache product: %w", err)
	}

	return nil
}

// DeleteProduct removes a product from cache.
func (c *Cache) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete product from cache: %w", err)
	}
	return nil
}

func productKey(id int64) string {
	return productKeyPrefix + strconv.FormatInt(id, 10)
}

func productToHash(p *model.Product) map[string]any {
	return map[string]any{
		"product_name": p.ProductName,
		"price":        p.Price.String(),
	}
}

// productFromHash rebuilds a product. A hash missing fields is
// treated as a miss so a half-written entry never reaches callers.
func productFromHash(id int64, fields map[string]string) (*model.Product, error) {
	name, ok := fields["product_name"]
	if !ok {
		return nil, ErrCacheMiss
	}
	raw, ok := fields["price"]
	if !ok {
		return nil, ErrCacheMiss
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cached price: %w", err)
	}

	return &model.Product{
		ID:          id,
		ProductName: name,
		Price:       price,
	}, nil
}
