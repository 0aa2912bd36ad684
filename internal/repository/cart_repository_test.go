package repository_test

import (
	"context"
	"math"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestAddItem() {
	defer suite.deleteAll()

	user := suite.createUser()
	product := suite.createProduct("9.99")

	tests := []struct {
		name      string
		userID    int64
		productID int64
		quantity  int
		wantQty   int
		wantErr   error
	}{
		{
			name:      "add item to new cart: ok",
			userID:    user.ID,
			productID: product.ID,
			quantity:  2,
			wantQty:   2,
		},
		{
			name:      "add same product again: quantity merged",
			userID:    user.ID,
			productID: product.ID,
			quantity:  3,
			wantQty:   5,
		},
		{
			name:      "zero quantity: error",
			userID:    user.ID,
			productID: product.ID,
			quantity:  0,
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "merge past int32: invalid",
			userID:    user.ID,
			productID: product.ID,
			quantity:  math.MaxInt32,
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "missing user: not found",
			userID:    999_999,
			productID: product.ID,
			quantity:  1,
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "missing product: not found",
			userID:    user.ID,
			productID: 999_999,
			quantity:  1,
			wantErr:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			line, err := suite.carts.AddItem(ctx, tt.userID, tt.productID, tt.quantity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, line.Quantity)
			assert.Equal(t, tt.productID, line.ProductID)
		})
	}

	suite.Run("cart keeps a single line per product", func() {
		t := suite.T()

		cart, err := suite.carts.GetCart(t.Context(), user.ID)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 5, cart.Lines[0].Quantity)
		assert.Equal(t, product.Title, cart.Lines[0].Title)
		assert.True(t, product.Price.Equal(cart.Lines[0].UnitPrice))
	})
}

func (suite *repositorySuite) TestGetCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	owner := suite.createUser()
	other := suite.createUser()
	p1 := suite.createProduct("10.00")
	p2 := suite.createProduct("2.50")

	for _, add := range []struct {
		userID, productID int64
		qty               int
	}{
		{owner.ID, p1.ID, 2},
		{owner.ID, p2.ID, 1},
		{other.ID, p1.ID, 7},
	} {
		_, err := suite.carts.AddItem(ctx, add.userID, add.productID, add.qty)
		require.NoError(t, err)
	}

	suite.Run("lines belong to the requested cart only", func() {
		t := suite.T()

		cart, err := suite.carts.GetCart(ctx, owner.ID)
		require.NoError(t, err)

		assert.Equal(t, owner.ID, cart.UserID)
		require.Len(t, cart.Lines, 2)
		assert.Equal(t, p1.ID, cart.Lines[0].ProductID)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
		assert.Equal(t, p2.ID, cart.Lines[1].ProductID)
	})

	suite.Run("lines are priced at the current catalog price", func() {
		t := suite.T()

		_, err := suite.products.UpdateProduct(ctx, p1.ID, func(p domain.Product) (domain.Product, error) {
			p.Price = usd(t, "11.00")
			return p, nil
		})
		require.NoError(t, err)

		cart, err := suite.carts.GetCart(ctx, owner.ID)
		require.NoError(t, err)
		assert.True(t, usd(t, "11.00").Equal(cart.Lines[0].UnitPrice))
	})

	suite.Run("user without cart: not found", func() {
		t := suite.T()

		lonely := suite.createUser()
		_, err := suite.carts.GetCart(ctx, lonely.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "cart not found")
	})
}

func (suite *repositorySuite) TestSetAndDeleteItem() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	product := suite.createProduct("3.00")

	_, err := suite.carts.AddItem(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)

	cart, err := suite.carts.GetCart(ctx, user.ID)
	require.NoError(t, err)

	suite.Run("set quantity overwrites", func() {
		t := suite.T()

		line, err := suite.carts.SetItemQuantity(ctx, cart.ID, product.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, line.Quantity)
	})

	suite.Run("set quantity of missing line: not found", func() {
		t := suite.T()

		_, err := suite.carts.SetItemQuantity(ctx, cart.ID, 999_999, 4)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	suite.Run("delete existing line", func() {
		t := suite.T()

		deleted, err := suite.carts.DeleteItem(ctx, cart.ID, product.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = suite.carts.DeleteItem(ctx, cart.ID, product.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func (suite *repositorySuite) TestLockCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	product := suite.createProduct("1.00")

	_, err := suite.carts.AddItem(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)

	suite.Run("outside a transaction: error", func() {
		t := suite.T()

		_, err := suite.carts.LockCart(ctx, user.ID)
		require.Error(t, err)
	})

	suite.Run("inside a transaction: ok", func() {
		t := suite.T()

		err := suite.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
			cart, err := repos.Carts.LockCart(ctx, user.ID)
			if err != nil {
				return err
			}
			assert.Len(t, cart.Lines, 1)
			return nil
		})
		require.NoError(t, err)
	})
}
