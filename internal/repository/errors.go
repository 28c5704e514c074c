package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	notNullViolationCode    = "23502"
	checkViolationCode      = "23514"
	stringTooLongCode       = "22001"
	numericOutOfRangeCode   = "22003"
)

// Common repository errors.
var (
	ErrNotFound             = errors.New("record not found")
	ErrUniqueViolation      = errors.New("unique constraint violation")
	ErrForeignKeyViolation  = errors.New("foreign key violation")
	ErrNotNullViolation     = errors.New("not null violation")
	ErrCheckViolation       = errors.New("check constraint violation")
	ErrValueOutOfRange      = errors.New("value exceeds column limits")
	ErrDuplicateAssociation = errors.New("product already in order")
	ErrOrderNotFound        = fmt.Errorf("order %w", ErrNotFound)
	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
)

// mapError classifies a pgx error. The original error stays in the chain.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%s: %w (%s): %w", op, ErrUniqueViolation, pgErr.ConstraintName, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%s: %w (%s): %w", op, ErrForeignKeyViolation, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%s: %w (%s): %w", op, ErrNotNullViolation, pgErr.ColumnName, err)
		case checkViolationCode:
			return fmt.Errorf("%s: %w (%s): %w", op, ErrCheckViolation, pgErr.ConstraintName, err)
		case stringTooLongCode, numericOutOfRangeCode:
			return fmt.Errorf("%s: %w: %w", op, ErrValueOutOfRange, err)
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
