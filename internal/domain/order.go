package domain

import (
	"fmt"
	"time"
)

const OrderStatusPending = "Pending"

// Order is an immutable snapshot of a checked out cart.
type Order struct {
	ID     int64
	UserID int64
	Total  Money
	Status string
	Lines  []OrderLine

	CreatedAt time.Time
}

// OrderLine keeps the price at purchase time; it is never recomputed from the catalog.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Title     string
	Quantity  int
	UnitPrice Money
}

func (l OrderLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

type OrderReceipt struct {
	OrderID   int64
	Total     Money
	Status    string
	CreatedAt time.Time
}

func (o Order) Receipt() OrderReceipt {
	return OrderReceipt{
		OrderID:   o.ID,
		Total:     o.Total,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

// NewOrder prices every cart line and copies its current unit price into an order line.
func NewOrder(cart Cart, now time.Time) (Order, error) {
	if len(cart.Lines) == 0 {
		return Order{}, NotFound(EntityCartItems)
	}

	lines := make([]OrderLine, 0, len(cart.Lines))
	for i, cl := range cart.Lines {
		if cl.Quantity <= 0 {
			return Order{}, fmt.Errorf("%w: line[%d] quantity %d", ErrInvalidInput, i, cl.Quantity)
		}

		lines = append(lines, OrderLine{
			ProductID: cl.ProductID,
			Title:     cl.Title,
			Quantity:  cl.Quantity,
			UnitPrice: cl.UnitPrice,
		})
	}

	total, err := SumSubtotals(lines, cart.Lines[0].UnitPrice.Currency)
	if err != nil {
		return Order{}, fmt.Errorf("SumSubtotals: %w", err)
	}

	return Order{
		UserID:    cart.UserID,
		Total:     total,
		Status:    OrderStatusPending,
		Lines:     lines,
		CreatedAt: now.UTC(),
	}, nil
}
