// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/storefront/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
}

// ToInput converts the request to repository input.
func (r CreateUserRequest) ToInput() model.UserInput {
	return model.UserInput{Name: r.Name, Address: r.Address, Email: r.Email}
}

// UpdateUserRequest represents the request body for updating a user.
// Only the keys present in the body are written.
type UpdateUserRequest struct {
	Name    model.Optional[string] `json:"name"`
	Address model.Optional[string] `json:"address"`
	Email   model.Optional[string] `json:"email"`
}

// ToPatch converts the request to a patch.
func (r UpdateUserRequest) ToPatch() model.UserPatch {
	return model.UserPatch{Name: r.Name, Address: r.Address, Email: r.Email}
}

// CreateProductRequest represents the request body for creating a product.
// Price accepts a JSON number or a numeric string.
type CreateProductRequest struct {
	ProductName *string          `json:"product_name"`
	Price       *decimal.Decimal `json:"price"`
}

// ToInput converts the request to repository input.
func (r CreateProductRequest) ToInput() model.ProductInput {
	return model.ProductInput{ProductName: r.ProductName, Price: r.Price}
}

// UpdateProductRequest represents the request body for updating a product.
type UpdateProductRequest struct {
	ProductName model.Optional[string]          `json:"product_name"`
	Price       model.Optional[decimal.Decimal] `json:"price"`
}

// ToPatch converts the request to a patch.
func (r UpdateProductRequest) ToPatch() model.ProductPatch {
	return model.ProductPatch{ProductName: r.ProductName, Price: r.Price}
}

// CreateOrderRequest represents the request body for creating an order.
// OrderDate defaults to the creation time.
type CreateOrderRequest struct {
	UserID    *int64     `json:"user_id"`
	OrderDate *time.Time `json:"order_date"`
}

// ToInput converts the request to repository input.
func (r CreateOrderRequest) ToInput() model.OrderInput {
	return model.OrderInput{UserID: r.UserID, OrderDate: r.OrderDate}
}

// UpdateOrderRequest represents the request body for updating an order.
type UpdateOrderRequest struct {
	UserID    model.Optional[int64]     `json:"user_id"`
	OrderDate model.Optional[time.Time] `json:"order_date"`
}

// ToPatch converts the request to a patch.
func (r UpdateOrderRequest) ToPatch() model.OrderPatch {
	return model.OrderPatch{UserID: r.UserID, OrderDate: r.OrderDate}
}
