package service_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/sqlcpp-shop/internal/auth"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/memstore"
	"github.com/nikolayk812/sqlcpp-shop/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
)

type fixture struct {
	store    *memstore.Store
	tokens   *auth.TokenIssuer
	accounts *service.Accounts
	catalog  *service.Catalog
	carts    *service.Carts
	checkout *service.Checkout
	orders   *service.Orders
}

var fixedNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()

	tokens, err := auth.NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)

	return &fixture{
		store:    store,
		tokens:   tokens,
		accounts: service.NewAccounts(store.Users(), auth.NewHasher(bcrypt.MinCost), tokens, auth.DefaultTokenTTL),
		catalog:  service.NewCatalog(store.Products(), currency.USD),
		carts:    service.NewCarts(store.Users(), store.Products(), store.Carts(), currency.USD),
		checkout: service.NewCheckout(store.Transactor(), service.WithCheckoutClock(func() time.Time { return fixedNow })),
		orders:   service.NewOrders(store.Orders()),
	}
}

func (f *fixture) user(t *testing.T, username string) domain.User {
	t.Helper()

	user, err := f.accounts.Register(t.Context(), service.Registration{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw-" + username,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) product(t *testing.T, title, price string) domain.Product {
	t.Helper()

	product, err := f.catalog.Create(t.Context(), service.NewProduct{
		Title: title,
		Price: decimal.RequireFromString(price),
		Stock: 10,
	})
	require.NoError(t, err)
	return product
}

func usd(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.USD)
}
