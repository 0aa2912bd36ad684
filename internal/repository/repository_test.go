package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"github.com/nikolayk812/sqlcpp-shop/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_schema.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

type repositorySuite struct {
	suite.Suite

	pool *pgxpool.Pool

	users    port.UserRepository
	products port.ProductRepository
	carts    port.CartRepository
	orders   port.OrderRepository
	tx       port.Transactor
}

// entry point to run the tests in the suite
func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(repositorySuite))
}

// before all tests in the suite
func (suite *repositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.users = repository.NewUser(suite.pool)
	suite.products = repository.NewProduct(suite.pool)
	suite.carts = repository.NewCart(suite.pool)
	suite.orders = repository.NewOrder(suite.pool)
	suite.tx = repository.NewTransactor(suite.pool)
}

// after all tests in the suite
func (suite *repositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *repositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(),
		"TRUNCATE TABLE order_items, orders, cart_items, carts, products, users RESTART IDENTITY CASCADE")
	suite.NoError(err)
}

func (suite *repositorySuite) createUser() domain.User {
	user, err := suite.users.CreateUser(suite.T().Context(), randomUser())
	suite.Require().NoError(err)
	return user
}

func (suite *repositorySuite) createProduct(price string) domain.Product {
	product := randomProduct()
	product.Price = domain.NewMoney(decimal.RequireFromString(price), currency.USD)

	created, err := suite.products.CreateProduct(suite.T().Context(), product)
	suite.Require().NoError(err)
	return created
}

func randomUser() domain.User {
	return domain.User{
		Username:     gofakeit.Username() + gofakeit.DigitN(6),
		Email:        gofakeit.Email(),
		PasswordHash: gofakeit.LetterN(60),
	}
}

func randomProduct() domain.Product {
	return domain.Product{
		Title:       gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       randomMoney(),
		Stock:       gofakeit.IntRange(0, 500),
		Image:       gofakeit.URL(),
		Category:    gofakeit.ProductCategory(),
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

var (
	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
)

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "ID", "CreatedAt", "UpdatedAt"),
		currencyComparer,
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotZero(t, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
}

func assertOrderLines(t *testing.T, expected, actual []domain.OrderLine) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.OrderLine{}, "ID", "OrderID"),
		currencyComparer,
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}

func usd(t *testing.T, amount string) domain.Money {
	t.Helper()

	d, err := decimal.NewFromString(amount)
	require.NoError(t, err)

	return domain.NewMoney(d, currency.USD)
}
