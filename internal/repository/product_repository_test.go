package repository_test

import (
	"errors"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestCreateProduct() {
	defer suite.deleteAll()

	tests := []struct {
		name    string
		product domain.Product
	}{
		{
			name:    "create product: ok",
			product: randomProduct(),
		},
		{
			name: "create product with zero price: ok",
			product: func() domain.Product {
				p := randomProduct()
				p.Price.Amount = decimal.Zero
				return p
			}(),
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			created, err := suite.products.CreateProduct(ctx, tt.product)
			require.NoError(t, err)
			assertProduct(t, tt.product, created)

			got, err := suite.products.GetProduct(ctx, created.ID)
			require.NoError(t, err)
			assertProduct(t, tt.product, got)
		})
	}
}

func (suite *repositorySuite) TestListProducts() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	products, err := suite.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	first := suite.createProduct("1.00")
	second := suite.createProduct("2.00")

	products, err = suite.products.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, second.ID, products[1].ID)
}

func (suite *repositorySuite) TestUpdateProduct() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product := suite.createProduct("10.00")

	suite.Run("only patched fields change", func() {
		t := suite.T()

		patch := domain.ProductPatch{
			Price: domain.Some(decimal.RequireFromString("12.50")),
			Stock: domain.Some(3),
		}

		updated, err := suite.products.UpdateProduct(ctx, product.ID, func(p domain.Product) (domain.Product, error) {
			return patch.Apply(p), nil
		})
		require.NoError(t, err)

		expected := product
		expected.Price.Amount = decimal.RequireFromString("12.50")
		expected.Stock = 3
		assertProduct(t, expected, updated)
		assert.Equal(t, product.ID, updated.ID)
		assert.False(t, updated.UpdatedAt.Before(product.UpdatedAt))
	})

	suite.Run("update func error leaves the product unchanged", func() {
		t := suite.T()

		before, err := suite.products.GetProduct(ctx, product.ID)
		require.NoError(t, err)

		boom := errors.New("boom")
		_, err = suite.products.UpdateProduct(ctx, product.ID, func(p domain.Product) (domain.Product, error) {
			return domain.Product{}, boom
		})
		require.ErrorIs(t, err, boom)

		after, err := suite.products.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assertProduct(t, before, after)
	})

	suite.Run("missing product: not found", func() {
		t := suite.T()

		_, err := suite.products.UpdateProduct(ctx, 999_999, func(p domain.Product) (domain.Product, error) {
			return p, nil
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func (suite *repositorySuite) TestDeleteProduct() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	suite.Run("delete product also removes its cart lines", func() {
		t := suite.T()

		user := suite.createUser()
		product := suite.createProduct("5.00")

		_, err := suite.carts.AddItem(ctx, user.ID, product.ID, 2)
		require.NoError(t, err)

		deleted, err := suite.products.DeleteProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		cart, err := suite.carts.GetCart(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)
	})

	suite.Run("delete missing product: not deleted", func() {
		t := suite.T()

		deleted, err := suite.products.DeleteProduct(ctx, 999_999)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	suite.Run("delete ordered product: conflict", func() {
		t := suite.T()

		user := suite.createUser()
		product := suite.createProduct("5.00")

		_, err := suite.orders.CreateOrder(ctx, domain.Order{
			UserID: user.ID,
			Total:  product.Price,
			Status: domain.OrderStatusPending,
			Lines: []domain.OrderLine{
				{ProductID: product.ID, Quantity: 1, UnitPrice: product.Price},
			},
			CreatedAt: product.CreatedAt,
		})
		require.NoError(t, err)

		_, err = suite.products.DeleteProduct(ctx, product.ID)
		require.ErrorIs(t, err, domain.ErrConflict)
	})
}
