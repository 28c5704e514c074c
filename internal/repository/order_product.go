package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/storefront/storefront/internal/model"
)

// AddProductToOrder associates a product with an order.
//
// Both rows must exist (ErrOrderNotFound, ErrProductNotFound) and the pair
// must be new (ErrDuplicateAssociation). All checks and the insert run in
// one transaction; nothing is written when any of them fails.
func (r *Repository) AddProductToOrder(ctx context.Context, orderID, productID int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if ok, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, orderID); err != nil {
			return mapError(err, "check order")
		} else if !ok {
			return ErrOrderNotFound
		}

		if ok, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID); err != nil {
			return mapError(err, "check product")
		} else if !ok {
			return ErrProductNotFound
		}

		dup, err := exists(ctx, tx,
			`SELECT EXISTS(SELECT 1 FROM order_products WHERE order_id = $1 AND product_id = $2)`,
			orderID, productID,
		)
		if err != nil {
			return mapError(err, "check association")
		}
		if dup {
			return ErrDuplicateAssociation
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`,
			orderID, productID,
		)
		if err != nil {
			// Lost a race with a concurrent insert of the same pair.
			if isUniqueViolation(err) {
				return ErrDuplicateAssociation
			}
			return mapError(err, "add product to order")
		}

		return nil
	})
}

// RemoveProductFromOrder deletes an association. ErrNotFound if absent.
func (r *Repository) RemoveProductFromOrder(ctx context.Context, orderID, productID int64) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM order_products WHERE order_id = $1 AND product_id = $2`,
		orderID, productID,
	)
	if err != nil {
		return mapError(err, "remove product from order")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListProductsForOrder resolves the order's product ids through the join
// table, then loads those products.
func (r *Repository) ListProductsForOrder(ctx context.Context, orderID int64) ([]*model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id FROM order_products WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, mapError(err, "list order product ids")
	}

	productIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, mapError(err, "collect order product ids")
	}

	if len(productIDs) == 0 {
		return make([]*model.Product, 0), nil
	}

	rows, err = r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1::bigint[]) ORDER BY id`,
		pq.Array(productIDs),
	)
	if err != nil {
		return nil, mapError(err, "list products for order")
	}
	return collectProducts(rows)
}

// CountOrderProducts returns how many products are associated with an order.
func (r *Repository) CountOrderProducts(ctx context.Context, orderID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM order_products WHERE order_id = $1`,
		orderID,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, "count order products")
	}
	return count, nil
}

func exists(ctx context.Context, q querier, query string, args ...any) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
