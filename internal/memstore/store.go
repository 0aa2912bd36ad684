// Package memstore implements the repository ports in process memory.
//
// Every write works on a copy of the state that replaces the live state only
// when the operation succeeds, so a failed operation or transaction leaves no
// trace. Transactions hold the store mutex for their whole duration.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
)

type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

type cartRow struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type cartItemRow struct {
	ID        int64
	CartID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type orderItemRow struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice domain.Money
}

type state struct {
	users      map[int64]domain.User
	products   map[int64]domain.Product
	carts      map[int64]cartRow
	cartItems  map[int64]cartItemRow
	orders     map[int64]domain.Order // stored without lines
	orderItems map[int64]orderItemRow

	nextUserID      int64
	nextProductID   int64
	nextCartID      int64
	nextCartItemID  int64
	nextOrderID     int64
	nextOrderItemID int64
}

func New() *Store {
	return &Store{
		st: &state{
			users:      make(map[int64]domain.User),
			products:   make(map[int64]domain.Product),
			carts:      make(map[int64]cartRow),
			cartItems:  make(map[int64]cartItemRow),
			orders:     make(map[int64]domain.Order),
			orderItems: make(map[int64]orderItemRow),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *state) clone() *state {
	c := *s
	c.users = maps.Clone(s.users)
	c.products = maps.Clone(s.products)
	c.carts = maps.Clone(s.carts)
	c.cartItems = maps.Clone(s.cartItems)
	c.orders = maps.Clone(s.orders)
	c.orderItems = maps.Clone(s.orderItems)
	return &c
}

// Ping always succeeds; it lets the store satisfy readiness checks.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Users() port.UserRepository       { return &userRepository{view{s: s}} }
func (s *Store) Products() port.ProductRepository { return &productRepository{view{s: s}} }
func (s *Store) Carts() port.CartRepository       { return &cartRepository{view{s: s}} }
func (s *Store) Orders() port.OrderRepository     { return &orderRepository{view{s: s}} }

// Transactor returns a port.Transactor over this store.
func (s *Store) Transactor() port.Transactor {
	return transactor{s: s}
}

type transactor struct {
	s *Store
}

func (t transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := t.s.st.clone()
	v := view{s: t.s, tx: working}

	err := fn(ctx, port.Repositories{
		Users:    &userRepository{v},
		Products: &productRepository{v},
		Carts:    &cartRepository{v},
		Orders:   &orderRepository{v},
	})
	if err != nil {
		return err
	}

	t.s.st = working
	return nil
}

// view binds repositories either to the live store or to a transaction's working state.
type view struct {
	s  *Store
	tx *state
}

func (v view) inTx() bool {
	return v.tx != nil
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}

	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	return fn(v.s.st)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}

	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	working := v.s.st.clone()
	if err := fn(working); err != nil {
		return err
	}

	v.s.st = working
	return nil
}
