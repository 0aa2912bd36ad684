package domain

import (
	"time"

	"golang.org/x/text/currency"
)

// Cart is a user's mutable basket. Lines carry the current catalog title and price.
type Cart struct {
	ID     int64
	UserID int64
	Lines  []CartLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartLine struct {
	ID        int64
	ProductID int64
	Title     string
	UnitPrice Money
	Quantity  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l CartLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// CartView is a cart priced at current catalog prices.
type CartView struct {
	Cart  Cart
	Total Money
}

func NewCartView(cart Cart, unit currency.Unit) (CartView, error) {
	total, err := SumSubtotals(cart.Lines, unit)
	if err != nil {
		return CartView{}, err
	}

	return CartView{Cart: cart, Total: total}, nil
}

// CartUpdate is the outcome of setting a line quantity: either the updated
// line or its removal.
type CartUpdate struct {
	Line    CartLine
	Removed bool
}
