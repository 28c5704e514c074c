package memstore

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront/internal/model"
	"github.com/storefront/storefront/internal/repository"
	"github.com/storefront/storefront/internal/testutil"
)

func TestStore_UserConstraints(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := testutil.NewUserInput("ada")
	u, err := s.CreateUser(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = s.CreateUser(ctx, in)
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)

	_, err = s.CreateUser(ctx, model.UserInput{Email: testutil.Ptr("x@example.test")})
	assert.ErrorIs(t, err, repository.ErrNotNullViolation)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_ColumnLimits(t *testing.T) {
	ctx := context.Background()
	s := New()

	in := testutil.NewUserInput("limits")
	in.Name = testutil.Ptr(strings.Repeat("n", repository.MaxUserNameLength))
	u, err := s.CreateUser(ctx, in)
	require.NoError(t, err)

	in = testutil.NewUserInput("limits-over")
	in.Name = testutil.Ptr(strings.Repeat("n", repository.MaxUserNameLength+1))
	_, err = s.CreateUser(ctx, in)
	assert.ErrorIs(t, err, repository.ErrValueOutOfRange)

	_, err = s.UpdateUser(ctx, u.ID, model.UserPatch{Email: model.Some(strings.Repeat("e", 101))})
	assert.ErrorIs(t, err, repository.ErrValueOutOfRange)

	_, err = s.CreateProduct(ctx, testutil.NewProductInput("Big", "123456789012345"))
	assert.ErrorIs(t, err, repository.ErrValueOutOfRange)

	_, err = s.CreateProduct(ctx, testutil.NewProductInput("Rounds over", "9999999999.995"))
	assert.ErrorIs(t, err, repository.ErrValueOutOfRange)

	p, err := s.CreateProduct(ctx, testutil.NewProductInput("Max", "9999999999.99"))
	require.NoError(t, err)

	_, err = s.UpdateProduct(ctx, p.ID, model.ProductPatch{Price: model.Some(decimal.New(1, 10))})
	assert.ErrorIs(t, err, repository.ErrValueOutOfRange)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", got.Price.StringFixed(2), "rejected update leaves the row alone")
}

func TestStore_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, testutil.NewUserInput("copy"))
	require.NoError(t, err)
	u.Name = "mutated"

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy", got.Name)
}

func TestStore_DeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, testutil.NewUserInput("c"))
	require.NoError(t, err)
	p, err := s.CreateProduct(ctx, testutil.NewProductInput("P", "1.00"))
	require.NoError(t, err)
	o, err := s.CreateOrder(ctx, testutil.NewOrderInput(u.ID))
	require.NoError(t, err)
	require.NoError(t, s.AddProductToOrder(ctx, o.ID, p.ID))

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	orders, err := s.ListOrdersForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	count, err := s.CountOrderProducts(ctx, o.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_Associations(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, testutil.NewUserInput("a"))
	require.NoError(t, err)
	o, err := s.CreateOrder(ctx, testutil.NewOrderInput(u.ID))
	require.NoError(t, err)
	p1, err := s.CreateProduct(ctx, testutil.NewProductInput("P1", "1.00"))
	require.NoError(t, err)
	p2, err := s.CreateProduct(ctx, testutil.NewProductInput("P2", "2.00"))
	require.NoError(t, err)

	require.NoError(t, s.AddProductToOrder(ctx, o.ID, p2.ID))
	require.NoError(t, s.AddProductToOrder(ctx, o.ID, p1.ID))
	assert.ErrorIs(t, s.AddProductToOrder(ctx, o.ID, p1.ID), repository.ErrDuplicateAssociation)
	assert.ErrorIs(t, s.AddProductToOrder(ctx, 99, p1.ID), repository.ErrOrderNotFound)
	assert.ErrorIs(t, s.AddProductToOrder(ctx, o.ID, 99), repository.ErrProductNotFound)

	products, err := s.ListProductsForOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, p1.ID, products[0].ID)
	assert.Equal(t, p2.ID, products[1].ID)

	require.NoError(t, s.DeleteProduct(ctx, p1.ID))
	count, err := s.CountOrderProducts(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.ErrorIs(t, s.RemoveProductFromOrder(ctx, o.ID, p1.ID), repository.ErrNotFound)
	require.NoError(t, s.RemoveProductFromOrder(ctx, o.ID, p2.ID))
}

func TestStore_OrderForeignKey(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateOrder(ctx, testutil.NewOrderInput(7))
	assert.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	_, err = s.CreateOrder(ctx, model.OrderInput{})
	assert.ErrorIs(t, err, repository.ErrNotNullViolation)
}
