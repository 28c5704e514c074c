package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/storefront/storefront/internal/model"
)

const orderColumns = `id, order_date, user_id`

// ListOrders returns every order ordered by id.
func (r *Repository) ListOrders(ctx context.Context) ([]*model.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list orders")
	}
	return collectOrders(rows)
}

// GetOrder retrieves an order by ID.
func (r *Repository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get order")
	}

	return order, nil
}

// CreateOrder inserts a new order. A missing order date defaults to now.
// An unknown user surfaces as ErrForeignKeyViolation.
func (r *Repository) CreateOrder(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	query := `
		INSERT INTO orders (user_id, order_date)
		VALUES ($1, COALESCE($2::timestamptz, NOW()))
		RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, in.UserID, in.OrderDate))
	if err != nil {
		return nil, mapError(err, "create order")
	}

	return order, nil
}

// UpdateOrder overwrites the fields present in patch.
func (r *Repository) UpdateOrder(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	var a assignments
	setOptional(&a, "user_id", patch.UserID)
	setOptional(&a, "order_date", patch.OrderDate)

	if a.empty() {
		return r.GetOrder(ctx, id)
	}

	query, args := a.build("orders", id, orderColumns)
	order, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update order")
	}

	return order, nil
}

// DeleteOrder removes an order and, by cascade, its product associations.
func (r *Repository) DeleteOrder(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete order")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListOrdersForUser returns the orders placed by a user.
// An unknown user yields an empty slice, not an error.
func (r *Repository) ListOrdersForUser(ctx context.Context, userID int64) ([]*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list orders for user")
	}
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*model.Order, error) {
	defer rows.Close()

	orders := make([]*model.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, mapError(err, "scan order")
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate orders")
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var order model.Order
	err := row.Scan(
		&order.ID,
		&order.OrderDate,
		&order.UserID,
	)
	if err != nil {
		return nil, err
	}
	order.OrderDate = order.OrderDate.UTC()
	return &order, nil
}
