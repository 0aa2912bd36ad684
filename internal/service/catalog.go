package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type NewProduct struct {
	Title       string
	Description string
	Price       decimal.Decimal
	// Currency is an ISO code; empty means the store currency.
	Currency string
	Stock    int
	Image    string
	Category string
}

type Catalog struct {
	products port.ProductRepository
	unit     currency.Unit
}

func NewCatalog(products port.ProductRepository, unit currency.Unit) *Catalog {
	return &Catalog{
		products: products,
		unit:     unit,
	}
}

func (s *Catalog) Create(ctx context.Context, np NewProduct) (domain.Product, error) {
	title := strings.TrimSpace(np.Title)
	if title == "" {
		return domain.Product{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := validatePrice(np.Price); err != nil {
		return domain.Product{}, err
	}
	if err := validateStock(np.Stock); err != nil {
		return domain.Product{}, err
	}

	unit, err := s.currency(np.Currency)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := s.products.CreateProduct(ctx, domain.Product{
		Title:       title,
		Description: np.Description,
		Price:       domain.NewMoney(np.Price, unit),
		Stock:       np.Stock,
		Image:       np.Image,
		Category:    np.Category,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.CreateProduct: %w", err)
	}

	return product, nil
}

func (s *Catalog) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

// List returns every product; an empty catalog is NotFound.
func (s *Catalog) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.ListProducts: %w", err)
	}

	if len(products) == 0 {
		return nil, domain.NotFound(domain.EntityProducts)
	}

	return products, nil
}

// Update applies the supplied patch fields only.
func (s *Catalog) Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	if patch.IsEmpty() {
		return domain.Product{}, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	if err := validatePatch(patch); err != nil {
		return domain.Product{}, err
	}

	return s.products.UpdateProduct(ctx, id, func(p domain.Product) (domain.Product, error) {
		return patch.Apply(p), nil
	})
}

func (s *Catalog) Delete(ctx context.Context, id int64) error {
	deleted, err := s.products.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		return domain.NotFound(domain.EntityProduct)
	}

	return nil
}

func (s *Catalog) currency(code string) (currency.Unit, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return s.unit, nil
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%w: currency %q: %w", domain.ErrInvalidInput, code, err)
	}
	if unit != s.unit {
		return currency.Unit{}, fmt.Errorf("%w: currency %s, store sells in %s", domain.ErrInvalidInput, unit, s.unit)
	}

	return unit, nil
}

func validatePatch(patch domain.ProductPatch) error {
	if title, ok := patch.Title.Get(); ok && strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
	}
	if price, ok := patch.Price.Get(); ok {
		if err := validatePrice(price); err != nil {
			return err
		}
	}
	if stock, ok := patch.Stock.Get(); ok {
		if err := validateStock(stock); err != nil {
			return err
		}
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if !price.Equal(price.Round(2)) {
		return fmt.Errorf("%w: price has more than 2 decimal places", domain.ErrInvalidInput)
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
