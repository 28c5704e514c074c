package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/storefront/storefront/internal/cache"
	"github.com/storefront/storefront/internal/metrics"
	"github.com/storefront/storefront/internal/model"
)

// ProductService handles product business logic.
type ProductService struct {
	store   ProductStore
	cache   ProductCache
	logger  *slog.Logger
	metrics metrics.Recorder

	// writes is bumped after every product write, before the cache key is
	// dropped. A fill that saw a bump while it ran is discarded.
	writes atomic.Uint64
}

// NewProductService creates a new ProductService. productCache may be nil.
func NewProductService(store ProductStore, productCache ProductCache, logger *slog.Logger, recorder metrics.Recorder) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProductService{
		store:   store,
		cache:   productCache,
		logger:  logger,
		metrics: recorder,
	}
}

// ListProducts returns all products.
func (s *ProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID, cache first.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, id)
		if err == nil {
			s.metrics.IncProductCacheHit()
			return cached, nil
		}
		s.metrics.IncProductCacheMiss()
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("product cache read failed", "product_id", id, "error", err)
		}
	}

	seen := s.writes.Load()

	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, translate(err, ErrProductNotFound)
	}

	if s.cache != nil {
		s.fill(ctx, product, seen)
	}

	return product, nil
}

// fill caches a product read while the write counter was at seen. A write
// that lands before the set skips it; one that lands between the set and
// the re-check gets its entry dropped here. Writers on other instances are
// not covered and are bounded by the TTL.
func (s *ProductService) fill(ctx context.Context, product *model.Product, seen uint64) {
	if s.writes.Load() != seen {
		return
	}
	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warn("product cache fill failed", "product_id", product.ID, "error", err)
		return
	}
	if s.writes.Load() != seen {
		if err := s.cache.DeleteProduct(ctx, product.ID); err != nil {
			s.logger.Warn("product cache invalidation failed", "product_id", product.ID, "error", err)
		}
	}
}

// CreateProduct creates a product.
func (s *ProductService) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	product, err := s.store.CreateProduct(ctx, in)
	if err != nil {
		return nil, translate(err, ErrProductNotFound)
	}

	s.metrics.IncCreated(metrics.EntityProduct)
	return product, nil
}

// UpdateProduct overwrites the fields present in patch.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	product, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, translate(err, ErrProductNotFound)
	}

	s.metrics.IncUpdated(metrics.EntityProduct)
	s.invalidate(ctx, id)
	return product, nil
}

// DeleteProduct deletes a product and its order associations.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return translate(err, ErrProductNotFound)
	}

	s.metrics.IncDeleted(metrics.EntityProduct)
	s.invalidate(ctx, id)
	return nil
}

// invalidate drops a cached product. Failures are logged only; the entry
// expires on its own.
func (s *ProductService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	s.writes.Add(1)
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		s.logger.Warn("product cache invalidation failed", "product_id", id, "error", err)
	}
}
