package repository_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"github.com/nikolayk812/sqlcpp-shop/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func (suite *repositorySuite) TestCreateOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	p1 := suite.createProduct("10.00")
	p2 := suite.createProduct("5.00")

	lines := []domain.OrderLine{
		{ProductID: p1.ID, Title: p1.Title, Quantity: 2, UnitPrice: p1.Price},
		{ProductID: p2.ID, Title: p2.Title, Quantity: 1, UnitPrice: p2.Price},
	}

	created, err := suite.orders.CreateOrder(ctx, domain.Order{
		UserID:    user.ID,
		Total:     usd(t, "25.00"),
		Status:    domain.OrderStatusPending,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, usd(t, "25.00").Equal(created.Total))
	assertOrderLines(t, lines, created.Lines)

	suite.Run("get order with lines", func() {
		t := suite.T()

		got, err := suite.orders.GetOrder(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPending, got.Status)
		assertOrderLines(t, lines, got.Lines)
	})

	suite.Run("order lines keep the purchase price", func() {
		t := suite.T()

		_, err := suite.products.UpdateProduct(ctx, p1.ID, func(p domain.Product) (domain.Product, error) {
			p.Price = usd(t, "99.00")
			return p, nil
		})
		require.NoError(t, err)

		history, err := suite.orders.ListOrderHistory(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assertOrderLines(t, lines, history[0].Lines)
		assert.True(t, usd(t, "25.00").Equal(history[0].Total))
	})

	suite.Run("order without lines: error", func() {
		t := suite.T()

		_, err := suite.orders.CreateOrder(ctx, domain.Order{UserID: user.ID, Total: usd(t, "0")})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	suite.Run("missing order: not found", func() {
		t := suite.T()

		_, err := suite.orders.GetOrder(ctx, 999_999)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func (suite *repositorySuite) TestListOrders() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	product := suite.createProduct("1.00")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 3 {
		_, err := suite.orders.CreateOrder(ctx, domain.Order{
			UserID:    user.ID,
			Total:     product.Price.Mul(i + 1),
			Status:    domain.OrderStatusPending,
			Lines:     []domain.OrderLine{{ProductID: product.ID, Quantity: i + 1, UnitPrice: product.Price}},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	orders, err := suite.orders.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i, o := range orders {
		assert.Empty(t, o.Lines)
		assert.True(t, base.Add(time.Duration(i)*time.Hour).Equal(o.CreatedAt))
	}

	history, err := suite.orders.ListOrderHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, o := range history {
		require.Len(t, o.Lines, 1)
		assert.Equal(t, i+1, o.Lines[0].Quantity)
	}

	empty, err := suite.orders.ListOrders(ctx, suite.createUser().ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func (suite *repositorySuite) TestCheckout() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	checkout := service.NewCheckout(suite.tx)

	suite.Run("checkout totals exactly and clears the cart", func() {
		t := suite.T()

		user := suite.createUser()
		p1 := suite.createProduct("10.00")
		p2 := suite.createProduct("5.00")

		_, err := suite.carts.AddItem(ctx, user.ID, p1.ID, 2)
		require.NoError(t, err)
		_, err = suite.carts.AddItem(ctx, user.ID, p2.ID, 1)
		require.NoError(t, err)

		receipt, err := checkout.Checkout(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "25.00 USD", receipt.Total.String())
		assert.Equal(t, domain.OrderStatusPending, receipt.Status)

		cart, err := suite.carts.GetCart(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)

		_, err = checkout.Checkout(ctx, user.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	suite.Run("failure after order insert rolls everything back", func() {
		t := suite.T()

		user := suite.createUser()
		product := suite.createProduct("4.00")

		_, err := suite.carts.AddItem(ctx, user.ID, product.ID, 3)
		require.NoError(t, err)

		boom := errors.New("clear failed")
		failing := service.NewCheckout(failingClearTransactor{inner: suite.tx, err: boom})

		_, err = failing.Checkout(ctx, user.ID)
		require.ErrorIs(t, err, boom)

		orders, err := suite.orders.ListOrders(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, orders)

		cart, err := suite.carts.GetCart(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 3, cart.Lines[0].Quantity)
	})

	suite.Run("concurrent checkouts of one cart produce one order", func() {
		t := suite.T()

		user := suite.createUser()
		product := suite.createProduct("2.00")

		_, err := suite.carts.AddItem(ctx, user.ID, product.ID, 1)
		require.NoError(t, err)

		const attempts = 8
		var succeeded, notFound atomic.Int32

		var g errgroup.Group
		for range attempts {
			g.Go(func() error {
				_, err := checkout.Checkout(ctx, user.ID)
				switch {
				case err == nil:
					succeeded.Add(1)
				case errors.Is(err, domain.ErrNotFound):
					notFound.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		assert.EqualValues(t, 1, succeeded.Load())
		assert.EqualValues(t, attempts-1, notFound.Load())

		orders, err := suite.orders.ListOrders(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})
}

// failingClearTransactor fails ClearCart after the order has been written.
type failingClearTransactor struct {
	inner port.Transactor
	err   error
}

func (f failingClearTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	return f.inner.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		repos.Carts = failingClearCarts{CartRepository: repos.Carts, err: f.err}
		return fn(ctx, repos)
	})
}

type failingClearCarts struct {
	port.CartRepository
	err error
}

func (f failingClearCarts) ClearCart(context.Context, int64) (int64, error) {
	return 0, f.err
}
