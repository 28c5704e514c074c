// Package memstore is an in-memory store with the same constraint
// behavior as the PostgreSQL repository. Unit tests use it in place of a
// database.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/storefront/storefront/internal/model"
	"github.com/storefront/storefront/internal/repository"
)

type pair struct {
	orderID   int64
	productID int64
}

// Store holds users, products, orders and their associations.
type Store struct {
	mu sync.RWMutex

	users    map[int64]model.User
	products map[int64]model.Product
	orders   map[int64]model.Order
	links    map[pair]struct{}

	nextUserID    int64
	nextProductID int64
	nextOrderID   int64

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[int64]model.User),
		products: make(map[int64]model.Product),
		orders:   make(map[int64]model.Order),
		links:    make(map[pair]struct{}),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ============================================================================
// Users
// ============================================================================

// ListUsers returns all users ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		u := s.users[id]
		out = append(out, &u)
	}
	return out, nil
}

// GetUser returns a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// CreateUser inserts a user.
func (s *Store) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Name == nil {
		return nil, violation("create user", repository.ErrNotNullViolation, "name")
	}
	if in.Email == nil {
		return nil, violation("create user", repository.ErrNotNullViolation, "email")
	}
	if err := checkUserLengths("create user", *in.Name, in.Address, *in.Email); err != nil {
		return nil, err
	}
	if s.emailTaken(*in.Email, 0) {
		return nil, violation("create user", repository.ErrUniqueViolation, "users_email_key")
	}

	s.nextUserID++
	u := model.User{
		ID:      s.nextUserID,
		Name:    *in.Name,
		Address: copyString(in.Address),
		Email:   *in.Email,
	}
	s.users[u.ID] = u
	return &u, nil
}

// UpdateUser applies the fields present in patch.
func (s *Store) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if patch.Name.Set {
		if patch.Name.Null {
			return nil, violation("update user", repository.ErrNotNullViolation, "name")
		}
		if !repository.FitsLength(patch.Name.Value, repository.MaxUserNameLength) {
			return nil, violation("update user", repository.ErrValueOutOfRange, "name")
		}
		u.Name = patch.Name.Value
	}
	if patch.Address.Set {
		if patch.Address.Null {
			u.Address = nil
		} else {
			addr := patch.Address.Value
			if !repository.FitsLength(addr, repository.MaxAddressLength) {
				return nil, violation("update user", repository.ErrValueOutOfRange, "address")
			}
			u.Address = &addr
		}
	}
	if patch.Email.Set {
		if patch.Email.Null {
			return nil, violation("update user", repository.ErrNotNullViolation, "email")
		}
		if !repository.FitsLength(patch.Email.Value, repository.MaxEmailLength) {
			return nil, violation("update user", repository.ErrValueOutOfRange, "email")
		}
		if s.emailTaken(patch.Email.Value, id) {
			return nil, violation("update user", repository.ErrUniqueViolation, "users_email_key")
		}
		u.Email = patch.Email.Value
	}

	s.users[id] = u
	return &u, nil
}

// DeleteUser removes a user with its orders and their associations.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}

	for orderID, o := range s.orders {
		if o.UserID == id {
			s.deleteOrderLocked(orderID)
		}
	}
	delete(s.users, id)
	return nil
}

func (s *Store) emailTaken(email string, exceptID int64) bool {
	for id, u := range s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

// ============================================================================
// Products
// ============================================================================

// ListProducts returns all products ordered by id.
func (s *Store) ListProducts(ctx context.Context) ([]*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Product, 0, len(s.products))
	for _, id := range sortedKeys(s.products) {
		p := s.products[id]
		out = append(out, &p)
	}
	return out, nil
}

// GetProduct returns a product by id.
func (s *Store) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// CreateProduct inserts a product.
func (s *Store) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ProductName == nil {
		return nil, violation("create product", repository.ErrNotNullViolation, "product_name")
	}
	if in.Price == nil {
		return nil, violation("create product", repository.ErrNotNullViolation, "price")
	}
	if !repository.FitsLength(*in.ProductName, repository.MaxProductNameLength) {
		return nil, violation("create product", repository.ErrValueOutOfRange, "product_name")
	}
	if !repository.FitsPrice(*in.Price) {
		return nil, violation("create product", repository.ErrValueOutOfRange, "price")
	}

	s.nextProductID++
	p := model.Product{
		ID:          s.nextProductID,
		ProductName: *in.ProductName,
		Price:       in.Price.Round(2),
	}
	s.products[p.ID] = p
	return &p, nil
}

// UpdateProduct applies the fields present in patch.
func (s *Store) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if patch.ProductName.Set {
		if patch.ProductName.Null {
			return nil, violation("update product", repository.ErrNotNullViolation, "product_name")
		}
		if !repository.FitsLength(patch.ProductName.Value, repository.MaxProductNameLength) {
			return nil, violation("update product", repository.ErrValueOutOfRange, "product_name")
		}
		p.ProductName = patch.ProductName.Value
	}
	if patch.Price.Set {
		if patch.Price.Null {
			return nil, violation("update product", repository.ErrNotNullViolation, "price")
		}
		if !repository.FitsPrice(patch.Price.Value) {
			return nil, violation("update product", repository.ErrValueOutOfRange, "price")
		}
		p.Price = patch.Price.Value.Round(2)
	}

	s.products[id] = p
	return &p, nil
}

// DeleteProduct removes a product and its associations.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}

	for k := range s.links {
		if k.productID == id {
			delete(s.links, k)
		}
	}
	delete(s.products, id)
	return nil
}

// ============================================================================
// Orders
// ============================================================================

// ListOrders returns all orders ordered by id.
func (s *Store) ListOrders(ctx context.Context) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterOrders(func(model.Order) bool { return true }), nil
}

// ListOrdersForUser returns the user's orders. Unknown users yield an
// empty slice.
func (s *Store) ListOrdersForUser(ctx context.Context, userID int64) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterOrders(func(o model.Order) bool { return o.UserID == userID }), nil
}

// GetOrder returns an order by id.
func (s *Store) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

// CreateOrder inserts an order. OrderDate defaults to now.
func (s *Store) CreateOrder(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.UserID == nil {
		return nil, violation("create order", repository.ErrNotNullViolation, "user_id")
	}
	if _, ok := s.users[*in.UserID]; !ok {
		return nil, violation("create order", repository.ErrForeignKeyViolation, "orders_user_id_fkey")
	}

	date := s.now()
	if in.OrderDate != nil {
		date = in.OrderDate.UTC()
	}

	s.nextOrderID++
	o := model.Order{
		ID:        s.nextOrderID,
		OrderDate: date,
		UserID:    *in.UserID,
	}
	s.orders[o.ID] = o
	return &o, nil
}

// UpdateOrder applies the fields present in patch.
func (s *Store) UpdateOrder(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if patch.UserID.Set {
		if patch.UserID.Null {
			return nil, violation("update order", repository.ErrNotNullViolation, "user_id")
		}
		if _, ok := s.users[patch.UserID.Value]; !ok {
			return nil, violation("update order", repository.ErrForeignKeyViolation, "orders_user_id_fkey")
		}
		o.UserID = patch.UserID.Value
	}
	if patch.OrderDate.Set {
		if patch.OrderDate.Null {
			return nil, violation("update order", repository.ErrNotNullViolation, "order_date")
		}
		o.OrderDate = patch.OrderDate.Value.UTC()
	}

	s.orders[id] = o
	return &o, nil
}

// DeleteOrder removes an order and its associations.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	s.deleteOrderLocked(id)
	return nil
}

func (s *Store) deleteOrderLocked(id int64) {
	for k := range s.links {
		if k.orderID == id {
			delete(s.links, k)
		}
	}
	delete(s.orders, id)
}

func (s *Store) filterOrders(keep func(model.Order) bool) []*model.Order {
	out := make([]*model.Order, 0)
	for _, id := range sortedKeys(s.orders) {
		o := s.orders[id]
		if keep(o) {
			out = append(out, &o)
		}
	}
	return out
}

// ============================================================================
// Associations
// ============================================================================

// AddProductToOrder associates a product with an order.
func (s *Store) AddProductToOrder(ctx context.Context, orderID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return repository.ErrOrderNotFound
	}
	if _, ok := s.products[productID]; !ok {
		return repository.ErrProductNotFound
	}

	k := pair{orderID: orderID, productID: productID}
	if _, ok := s.links[k]; ok {
		return repository.ErrDuplicateAssociation
	}
	s.links[k] = struct{}{}
	return nil
}

// RemoveProductFromOrder deletes an association.
func (s *Store) RemoveProductFromOrder(ctx context.Context, orderID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := pair{orderID: orderID, productID: productID}
	if _, ok := s.links[k]; !ok {
		return repository.ErrNotFound
	}
	delete(s.links, k)
	return nil
}

// ListProductsForOrder returns the order's products ordered by id.
func (s *Store) ListProductsForOrder(ctx context.Context, orderID int64) ([]*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Product, 0)
	for _, id := range sortedKeys(s.products) {
		if _, ok := s.links[pair{orderID: orderID, productID: id}]; ok {
			p := s.products[id]
			out = append(out, &p)
		}
	}
	return out, nil
}

// CountOrderProducts returns how many products are associated with an order.
func (s *Store) CountOrderProducts(ctx context.Context, orderID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for k := range s.links {
		if k.orderID == orderID {
			n++
		}
	}
	return n, nil
}

// ============================================================================
// Helpers
// ============================================================================

func checkUserLengths(op, name string, address *string, email string) error {
	switch {
	case !repository.FitsLength(name, repository.MaxUserNameLength):
		return violation(op, repository.ErrValueOutOfRange, "name")
	case address != nil && !repository.FitsLength(*address, repository.MaxAddressLength):
		return violation(op, repository.ErrValueOutOfRange, "address")
	case !repository.FitsLength(email, repository.MaxEmailLength):
		return violation(op, repository.ErrValueOutOfRange, "email")
	}
	return nil
}

func violation(op string, kind error, detail string) error {
	return fmt.Errorf("%s: %w (%s)", op, kind, detail)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
