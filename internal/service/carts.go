package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"golang.org/x/text/currency"
)

type Carts struct {
	users    port.UserRepository
	products port.ProductRepository
	carts    port.CartRepository
	unit     currency.Unit
}

func NewCarts(users port.UserRepository, products port.ProductRepository, carts port.CartRepository, unit currency.Unit) *Carts {
	return &Carts{
		users:    users,
		products: products,
		carts:    carts,
		unit:     unit,
	}
}

// AddItem merges quantity into the user's line for the product, creating the cart on first use.
func (s *Carts) AddItem(ctx context.Context, userID, productID int64, quantity int) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return domain.CartLine{}, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.CartLine{}, err
	}

	line, err := s.carts.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return domain.CartLine{}, err
	}

	line.Title = product.Title
	line.UnitPrice = product.Price

	return line, nil
}

// UpdateItem overwrites the line quantity; a quantity of zero or less removes the line.
func (s *Carts) UpdateItem(ctx context.Context, userID, productID int64, quantity int) (domain.CartUpdate, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return domain.CartUpdate{}, err
	}

	if quantity <= 0 {
		deleted, err := s.carts.DeleteItem(ctx, cart.ID, productID)
		if err != nil {
			return domain.CartUpdate{}, err
		}
		if !deleted {
			return domain.CartUpdate{}, domain.NotFound(domain.EntityCartItem)
		}

		return domain.CartUpdate{
			Line:    domain.CartLine{ProductID: productID},
			Removed: true,
		}, nil
	}

	line, err := s.carts.SetItemQuantity(ctx, cart.ID, productID, quantity)
	if err != nil {
		return domain.CartUpdate{}, err
	}

	for _, cl := range cart.Lines {
		if cl.ProductID == productID {
			line.Title = cl.Title
			line.UnitPrice = cl.UnitPrice
			break
		}
	}

	return domain.CartUpdate{Line: line}, nil
}

// View prices the cart at current catalog prices.
func (s *Carts) View(ctx context.Context, userID int64) (domain.CartView, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return domain.CartView{}, err
	}

	view, err := domain.NewCartView(cart, s.unit)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("domain.NewCartView: %w", err)
	}

	return view, nil
}
