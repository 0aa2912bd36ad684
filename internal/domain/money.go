package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func ZeroMoney(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// Add returns m+other. Both values must be in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Mul(quantity int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(quantity))), Currency: m.Currency}
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency.String()
}

// Subtotaler is implemented by cart and order lines.
type Subtotaler interface {
	Subtotal() Money
}

// SumSubtotals adds up line subtotals. An empty slice sums to zero in unit.
func SumSubtotals[L Subtotaler](lines []L, unit currency.Unit) (Money, error) {
	total := ZeroMoney(unit)

	for i, line := range lines {
		var err error
		total, err = total.Add(line.Subtotal())
		if err != nil {
			return Money{}, fmt.Errorf("line[%d]: %w", i, err)
		}
	}

	return total, nil
}
