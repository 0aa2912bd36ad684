package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sqlcpp-shop/internal/db"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	stock, err := toInt32(product.Stock)
	if err != nil {
		return domain.Product{}, err
	}

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		Title:         product.Title,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Stock:         stock,
		Image:         product.Image,
		Category:      product.Category,
	})
	if err != nil {
		return domain.Product{}, dbError("q.CreateProduct", domain.EntityProduct, err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, dbError("q.GetProduct", domain.EntityProduct, err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, dbError("q.ListProducts", domain.EntityProducts, err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, id int64, update func(domain.Product) (domain.Product, error)) (domain.Product, error) {
	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Product, error) {
		row, err := q.GetProductForUpdate(ctx, id)
		if err != nil {
			return domain.Product{}, dbError("q.GetProductForUpdate", domain.EntityProduct, err)
		}

		current, err := mapProductToDomain(row)
		if err != nil {
			return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
		}

		next, err := update(current)
		if err != nil {
			return domain.Product{}, err
		}

		stock, err := toInt32(next.Stock)
		if err != nil {
			return domain.Product{}, err
		}

		row, err = q.UpdateProduct(ctx, db.UpdateProductParams{
			ID:            id,
			Title:         next.Title,
			Description:   next.Description,
			PriceAmount:   next.Price.Amount,
			PriceCurrency: next.Price.Currency.String(),
			Stock:         stock,
			Image:         next.Image,
			Category:      next.Category,
		})
		if err != nil {
			return domain.Product{}, dbError("q.UpdateProduct", domain.EntityProduct, err)
		}

		return mapProductToDomain(row)
	})
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	rowsAffected, err := r.q.DeleteProduct(ctx, id)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return false, fmt.Errorf("%w: product[%d] is referenced by orders", domain.ErrConflict, id)
		}
		return false, dbError("q.DeleteProduct", domain.EntityProduct, err)
	}

	return rowsAffected > 0, nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.Product{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Stock:       int(row.Stock),
		Image:       row.Image,
		Category:    row.Category,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func toInt32(n int) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d is out of range", domain.ErrInvalidInput, n)
	}
	return int32(n), nil
}
