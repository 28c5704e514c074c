package service

import (
	"context"
	"fmt"

	"github.com/storefront/storefront/internal/metrics"
	"github.com/storefront/storefront/internal/model"
)

// OrderService handles orders and their product associations.
type OrderService struct {
	store   OrderStore
	metrics metrics.Recorder
}

// NewOrderService creates a new OrderService.
func NewOrderService(store OrderStore, recorder metrics.Recorder) *OrderService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &OrderService{store: store, metrics: recorder}
}

// ListOrders returns all orders.
func (s *OrderService) ListOrders(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrdersForUser returns the user's orders. An unknown user is not an
// error; the result is empty.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID int64) ([]*model.Order, error) {
	orders, err := s.store.ListOrdersForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user: %w", err)
	}
	return orders, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, translate(err, ErrOrderNotFound)
	}
	return order, nil
}

// CreateOrder creates an order. An unknown user yields ErrInvalidReference.
func (s *OrderService) CreateOrder(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	order, err := s.store.CreateOrder(ctx, in)
	if err != nil {
		return nil, translate(err, ErrOrderNotFound)
	}

	s.metrics.IncCreated(metrics.EntityOrder)
	return order, nil
}

// UpdateOrder overwrites the fields present in patch.
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	order, err := s.store.UpdateOrder(ctx, id, patch)
	if err != nil {
		return nil, translate(err, ErrOrderNotFound)
	}

	s.metrics.IncUpdated(metrics.EntityOrder)
	return order, nil
}

// DeleteOrder deletes an order and its associations.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return translate(err, ErrOrderNotFound)
	}

	s.metrics.IncDeleted(metrics.EntityOrder)
	return nil
}

// AddProductToOrder associates a product with an order.
func (s *OrderService) AddProductToOrder(ctx context.Context, orderID, productID int64) error {
	if err := s.store.AddProductToOrder(ctx, orderID, productID); err != nil {
		return translate(err, ErrOrderNotFound)
	}

	s.metrics.IncAssociation(metrics.AssociationAdded)
	return nil
}

// RemoveProductFromOrder removes an association.
func (s *OrderService) RemoveProductFromOrder(ctx context.Context, orderID, productID int64) error {
	if err := s.store.RemoveProductFromOrder(ctx, orderID, productID); err != nil {
		return translate(err, ErrAssociationNotFound)
	}

	s.metrics.IncAssociation(metrics.AssociationRemoved)
	return nil
}

// ListProductsForOrder returns the products associated with an order.
func (s *OrderService) ListProductsForOrder(ctx context.Context, orderID int64) ([]*model.Product, error) {
	products, err := s.store.ListProductsForOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for order: %w", err)
	}
	return products, nil
}
