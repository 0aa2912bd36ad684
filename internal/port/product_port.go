package port

import (
	"context"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	// UpdateProduct loads the product, lets update produce the new state and stores it atomically.
	UpdateProduct(ctx context.Context, id int64, update func(domain.Product) (domain.Product, error)) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
}
