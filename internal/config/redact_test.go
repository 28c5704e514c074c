package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"with password", "postgres://shop:s3cret@db:5432/storefront", "postgres://shop@db:5432/storefront"},
		{"no credentials", "redis://localhost:6379/0", "redis://localhost:6379/0"},
		{"password only", "redis://:s3cret@localhost:6379", "redis://redacted@localhost:6379"},
		{"unparseable", "postgres://%zz", "[redacted]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactURL(tt.raw))
		})
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://shop:s3cret@db:5432/storefront"

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, SanitizeError(nil, dsn))
	})

	t.Run("url secret replaced", func(t *testing.T) {
		err := errors.New("dial " + dsn + ": connection refused")
		got := SanitizeError(err, dsn)
		assert.NotContains(t, got, "s3cret")
		assert.Contains(t, got, "postgres://shop@db:5432/storefront")
	})

	t.Run("key value password masked", func(t *testing.T) {
		err := errors.New("failed: host=db user=shop password=hunter2 dbname=storefront")
		got := SanitizeError(err)
		assert.NotContains(t, got, "hunter2")
		assert.Contains(t, got, "password=redacted")
	})
}
