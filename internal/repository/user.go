package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/storefront/storefront/internal/model"
)

const userColumns = `id, name, address, email`

// ListUsers returns every user ordered by id.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list users")
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err, "scan user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate users")
	}

	return users, nil
}

// GetUser retrieves a user by ID.
func (r *Repository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get user")
	}

	return user, nil
}

// CreateUser inserts a new user and returns it with its generated ID.
// A duplicate email surfaces as ErrUniqueViolation.
func (r *Repository) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	query := `
		INSERT INTO users (name, address, email)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, in.Name, in.Address, in.Email))
	if err != nil {
		return nil, mapError(err, "create user")
	}

	return user, nil
}

// UpdateUser overwrites the fields present in patch.
func (r *Repository) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	var a assignments
	setOptional(&a, "name", patch.Name)
	setOptional(&a, "address", patch.Address)
	setOptional(&a, "email", patch.Email)

	if a.empty() {
		return r.GetUser(ctx, id)
	}

	query, args := a.build("users", id, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update user")
	}

	return user, nil
}

// DeleteUser removes a user. Its orders and their product associations
// are removed by ON DELETE CASCADE.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete user")
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Address,
		&user.Email,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
