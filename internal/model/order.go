package model

import "time"

// Order is placed by a user and holds zero or more products.
type Order struct {
	ID        int64     `json:"id"`
	OrderDate time.Time `json:"order_date"`
	UserID    int64     `json:"user_id"`
}

// OrderInput carries the fields of a new order.
// A nil OrderDate means "now" in UTC.
type OrderInput struct {
	UserID    *int64
	OrderDate *time.Time
}

// OrderPatch lists the mutable order fields.
type OrderPatch struct {
	UserID    Optional[int64]
	OrderDate Optional[time.Time]
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return !p.UserID.Set && !p.OrderDate.Set
}

// OrderProduct records that a product is part of an order.
// A pair appears at most once; there is no quantity.
type OrderProduct struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
}
