// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/storefront/storefront/internal/model"
)

// UserStore persists users.
type UserStore interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, in model.UserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ProductStore persists products.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// OrderStore persists orders and their product associations.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]*model.Order, error)
	ListOrdersForUser(ctx context.Context, userID int64) ([]*model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, in model.OrderInput) (*model.Order, error)
	UpdateOrder(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	AddProductToOrder(ctx context.Context, orderID, productID int64) error
	RemoveProductFromOrder(ctx context.Context, orderID, productID int64) error
	ListProductsForOrder(ctx context.Context, orderID int64) ([]*model.Product, error)
}

// Store is the full persistence surface.
type Store interface {
	UserStore
	ProductStore
	OrderStore
}

// ProductCache is a read-through cache for single products.
// A nil ProductCache disables caching.
type ProductCache interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	SetProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}
