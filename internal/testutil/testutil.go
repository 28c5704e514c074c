// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/storefront/storefront/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 727001

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// TruncateAll empties every storefront table and resets id sequences.
// The schema must already exist.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE order_products, orders, products, users RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

var seq atomic.Int64

// UniqueEmail generates an email address that has not been used in this run.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.test", prefix, time.Now().UnixNano(), seq.Add(1))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// NewUserInput creates a user input with a unique email.
func NewUserInput(name string) model.UserInput {
	return model.UserInput{
		Name:    Ptr(name),
		Address: Ptr("1 Test Street"),
		Email:   Ptr(UniqueEmail(name)),
	}
}

// NewProductInput creates a product input with the given price.
func NewProductInput(name, price string) model.ProductInput {
	return model.ProductInput{
		ProductName: Ptr(name),
		Price:       Ptr(decimal.RequireFromString(price)),
	}
}

// NewOrderInput creates an order input owned by userID.
func NewOrderInput(userID int64) model.OrderInput {
	return model.OrderInput{UserID: Ptr(userID)}
}
