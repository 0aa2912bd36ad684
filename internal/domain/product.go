package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Title       string
	Description string
	Price       Money
	Stock       int
	Image       string
	Category    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductPatch is a partial product update: only fields that are set are applied.
type ProductPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Price       Optional[decimal.Decimal]
	Stock       Optional[int]
	Image       Optional[string]
	Category    Optional[string]
}

func (p ProductPatch) IsEmpty() bool {
	return !p.Title.IsSet() &&
		!p.Description.IsSet() &&
		!p.Price.IsSet() &&
		!p.Stock.IsSet() &&
		!p.Image.IsSet() &&
		!p.Category.IsSet()
}

func (p ProductPatch) Apply(product Product) Product {
	product.Title = p.Title.Or(product.Title)
	product.Description = p.Description.Or(product.Description)
	product.Price.Amount = p.Price.Or(product.Price.Amount)
	product.Stock = p.Stock.Or(product.Stock)
	product.Image = p.Image.Or(product.Image)
	product.Category = p.Category.Or(product.Category)

	return product
}
