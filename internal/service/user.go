package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/storefront/internal/metrics"
	"github.com/storefront/storefront/internal/model"
	"github.com/storefront/storefront/internal/repository"
)

// UserService handles user business logic.
type UserService struct {
	store   UserStore
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{store: store, metrics: recorder}
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	return user, nil
}

// CreateUser creates a user. A taken email yields ErrEmailExists.
func (s *UserService) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	user, err := s.store.CreateUser(ctx, in)
	if err != nil {
		return nil, translateUser(err)
	}

	s.metrics.IncCreated(metrics.EntityUser)
	return user, nil
}

// UpdateUser overwrites the fields present in patch.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	user, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, translateUser(err)
	}

	s.metrics.IncUpdated(metrics.EntityUser)
	return user, nil
}

// DeleteUser deletes a user together with its orders.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return translate(err, ErrUserNotFound)
	}

	s.metrics.IncDeleted(metrics.EntityUser)
	return nil
}

// translateUser maps the only unique constraint on users to ErrEmailExists.
func translateUser(err error) error {
	if errors.Is(err, repository.ErrUniqueViolation) {
		return fmt.Errorf("%w: %w", ErrEmailExists, err)
	}
	return translate(err, ErrUserNotFound)
}
