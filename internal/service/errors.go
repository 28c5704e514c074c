package service

import (
	"errors"
	"fmt"

	"github.com/storefront/storefront/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrAssociationNotFound  = errors.New("product not in order")
	ErrDuplicateAssociation = errors.New("product already in order")
	ErrEmailExists          = errors.New("email already exists")
	ErrConstraintViolation  = errors.New("constraint violation")

	// Refinements of ErrConstraintViolation.
	ErrInvalidReference = fmt.Errorf("invalid reference: %w", ErrConstraintViolation)
	ErrMissingField     = fmt.Errorf("missing required field: %w", ErrConstraintViolation)
)

// translate maps a repository error to a service error. notFound is
// returned for a plain repository.ErrNotFound. Constraint errors keep the
// repository error in the chain for logging.
func translate(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrOrderNotFound):
		return ErrOrderNotFound
	case errors.Is(err, repository.ErrProductNotFound):
		return ErrProductNotFound
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicateAssociation):
		return ErrDuplicateAssociation
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	case errors.Is(err, repository.ErrNotNullViolation):
		return fmt.Errorf("%w: %w", ErrMissingField, err)
	case errors.Is(err, repository.ErrUniqueViolation),
		errors.Is(err, repository.ErrCheckViolation),
		errors.Is(err, repository.ErrValueOutOfRange):
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return err
}
