package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/storefront/storefront/internal/model"
)

const productColumns = `id, product_name, price`

// ListProducts returns every product ordered by id.
func (r *Repository) ListProducts(ctx context.Context) ([]*model.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list products")
	}
	return collectProducts(rows)
}

// GetProduct retrieves a product by ID.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get product")
	}

	return product, nil
}

// CreateProduct inserts a new product.
func (r *Repository) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	query := `
		INSERT INTO products (product_name, price)
		VALUES ($1, $2)
		RETURNING ` + productColumns

	// A typed nil pointer would reach the driver as a non-nil interface.
	var price any
	if in.Price != nil {
		price = *in.Price
	}

	product, err := scanProduct(r.pool.QueryRow(ctx, query, in.ProductName, price))
	if err != nil {
		return nil, mapError(err, "create product")
	}

	return product, nil
}

// UpdateProduct overwrites the fields present in patch.
func (r *Repository) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	var a assignments
	setOptional(&a, "product_name", patch.ProductName)
	setOptional(&a, "price", patch.Price)

	if a.empty() {
		return r.GetProduct(ctx, id)
	}

	query, args := a.build("products", id, productColumns)
	product, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update product")
	}

	return product, nil
}

// DeleteProduct removes a product and, by cascade, its order associations.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete product")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func collectProducts(rows pgx.Rows) ([]*model.Product, error) {
	defer rows.Close()

	products := make([]*model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, mapError(err, "scan product")
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate products")
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var product model.Product
	err := row.Scan(
		&product.ID,
		&product.ProductName,
		&product.Price,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
