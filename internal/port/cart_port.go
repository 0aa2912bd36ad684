package port

import (
	"context"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

type CartRepository interface {
	// GetCart returns the user's cart with its lines priced at current catalog prices.
	GetCart(ctx context.Context, userID int64) (domain.Cart, error)
	// LockCart is GetCart that also locks the cart row until the surrounding transaction ends.
	LockCart(ctx context.Context, userID int64) (domain.Cart, error)
	// AddItem creates the cart if needed and merges quantity into the (cart, product) line.
	AddItem(ctx context.Context, userID, productID int64, quantity int) (domain.CartLine, error)
	SetItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (domain.CartLine, error)
	DeleteItem(ctx context.Context, cartID, productID int64) (bool, error)
	ClearCart(ctx context.Context, cartID int64) (int64, error)
}
