package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Name    Optional[string]          `json:"name"`
	Address Optional[string]          `json:"address"`
	Price   Optional[decimal.Decimal] `json:"price"`
}

func TestOptional_Unmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantName    Optional[string]
		wantAddress Optional[string]
	}{
		{
			name:        "absent keys stay unset",
			body:        `{}`,
			wantName:    Optional[string]{},
			wantAddress: Optional[string]{},
		},
		{
			name:        "present value",
			body:        `{"name":"Ada"}`,
			wantName:    Some("Ada"),
			wantAddress: Optional[string]{},
		},
		{
			name:        "explicit null",
			body:        `{"address":null}`,
			wantName:    Optional[string]{},
			wantAddress: Null[string](),
		},
		{
			name:        "empty string is a value",
			body:        `{"name":""}`,
			wantName:    Some(""),
			wantAddress: Optional[string]{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got patchBody
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantAddress, got.Address)
		})
	}
}

func TestOptional_UnmarshalTypeMismatch(t *testing.T) {
	t.Parallel()

	var got patchBody
	err := json.Unmarshal([]byte(`{"name":42}`), &got)
	require.Error(t, err)
}

func TestOptional_DecimalValue(t *testing.T) {
	t.Parallel()

	var got patchBody
	require.NoError(t, json.Unmarshal([]byte(`{"price":9.99}`), &got))
	require.True(t, got.Price.Set)
	assert.True(t, got.Price.Value.Equal(decimal.RequireFromString("9.99")))
}

func TestOptional_Arg(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Null[string]().Arg())
	assert.Equal(t, "x", Some("x").Arg())
}

func TestPatch_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{Address: Null[string]()}.IsEmpty())
	assert.True(t, ProductPatch{}.IsEmpty())
	assert.False(t, ProductPatch{Price: Some(decimal.NewFromInt(1))}.IsEmpty())
	assert.True(t, OrderPatch{}.IsEmpty())
	assert.False(t, OrderPatch{UserID: Some(int64(3))}.IsEmpty())
}

func TestProduct_PriceMarshalsAsNumber(t *testing.T) {
	t.Parallel()

	p := Product{ID: 1, ProductName: "Widget", Price: decimal.RequireFromString("9.99")}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"product_name":"Widget","price":9.99}`, string(data))
}

func TestUser_NullAddressSerialized(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(User{ID: 2, Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"name":"A","address":null,"email":"a@x.com"}`, string(data))
}
