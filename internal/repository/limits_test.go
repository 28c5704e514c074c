package repository

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFitsLength(t *testing.T) {
	t.Parallel()

	assert.True(t, FitsLength(strings.Repeat("a", 100), MaxUserNameLength))
	assert.False(t, FitsLength(strings.Repeat("a", 101), MaxUserNameLength))
	// Characters, not bytes.
	assert.True(t, FitsLength(strings.Repeat("é", 100), MaxUserNameLength))
}

func TestFitsPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price string
		want  bool
	}{
		{"9.99", true},
		{"9999999999.99", true},
		{"9999999999.995", false},
		{"10000000000", false},
		{"-9999999999.99", true},
		{"-10000000000", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FitsPrice(decimal.RequireFromString(tt.price)), tt.price)
	}
}
