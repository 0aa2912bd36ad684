package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sqlcpp-shop/internal/db"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, userID int64) (domain.Cart, error) {
	dbCart, err := r.q.GetCartByUserID(ctx, userID)
	if err != nil {
		return domain.Cart{}, dbError("q.GetCartByUserID", domain.EntityCart, err)
	}

	return r.loadLines(ctx, dbCart)
}

func (r *cartRepository) LockCart(ctx context.Context, userID int64) (domain.Cart, error) {
	if r.pool != nil {
		return domain.Cart{}, errors.New("LockCart requires a transaction")
	}

	dbCart, err := r.q.LockCartByUserID(ctx, userID)
	if err != nil {
		return domain.Cart{}, dbError("q.LockCartByUserID", domain.EntityCart, err)
	}

	return r.loadLines(ctx, dbCart)
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID int64, quantity int) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	qty, err := toInt32(quantity)
	if err != nil {
		return domain.CartLine{}, err
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.CartLine, error) {
		dbCart, err := q.UpsertCart(ctx, userID)
		if err != nil {
			if pgErrorCode(err) == foreignKeyViolation {
				return domain.CartLine{}, domain.NotFound(domain.EntityUser)
			}
			return domain.CartLine{}, dbError("q.UpsertCart", domain.EntityCart, err)
		}

		item, err := q.UpsertCartItem(ctx, db.UpsertCartItemParams{
			CartID:    dbCart.ID,
			ProductID: productID,
			Quantity:  qty,
		})
		if err != nil {
			switch pgErrorCode(err) {
			case foreignKeyViolation:
				return domain.CartLine{}, domain.NotFound(domain.EntityProduct)
			case numericValueOutOfRange:
				return domain.CartLine{}, fmt.Errorf("%w: merged quantity is out of range", domain.ErrInvalidInput)
			}
			return domain.CartLine{}, dbError("q.UpsertCartItem", domain.EntityCartItem, err)
		}

		return mapCartItemToDomain(item), nil
	})
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	qty, err := toInt32(quantity)
	if err != nil {
		return domain.CartLine{}, err
	}

	item, err := r.q.SetCartItemQuantity(ctx, db.SetCartItemQuantityParams{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
	})
	if err != nil {
		return domain.CartLine{}, dbError("q.SetCartItemQuantity", domain.EntityCartItem, err)
	}

	return mapCartItemToDomain(item), nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, productID int64) (bool, error) {
	rowsAffected, err := r.q.DeleteCartItem(ctx, db.DeleteCartItemParams{
		CartID:    cartID,
		ProductID: productID,
	})
	if err != nil {
		return false, dbError("q.DeleteCartItem", domain.EntityCartItem, err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, cartID int64) (int64, error) {
	rowsAffected, err := r.q.ClearCart(ctx, cartID)
	if err != nil {
		return 0, dbError("q.ClearCart", domain.EntityCartItems, err)
	}

	return rowsAffected, nil
}

func (r *cartRepository) loadLines(ctx context.Context, dbCart db.Cart) (domain.Cart, error) {
	rows, err := r.q.ListCartLines(ctx, dbCart.ID)
	if err != nil {
		return domain.Cart{}, dbError("q.ListCartLines", domain.EntityCartItems, err)
	}

	lines, err := mapCartLineRowsToDomain(rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapCartLineRowsToDomain: %w", err)
	}

	return domain.Cart{
		ID:        dbCart.ID,
		UserID:    dbCart.UserID,
		Lines:     lines,
		CreatedAt: dbCart.CreatedAt,
		UpdatedAt: dbCart.UpdatedAt,
	}, nil
}

func mapCartItemToDomain(item db.CartItem) domain.CartLine {
	return domain.CartLine{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  int(item.Quantity),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func mapCartLineRowToDomain(row db.ListCartLinesRow) (domain.CartLine, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartLine{
		ID:        row.ID,
		ProductID: row.ProductID,
		Title:     row.Title,
		UnitPrice: domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Quantity:  int(row.Quantity),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func mapCartLineRowsToDomain(rows []db.ListCartLinesRow) ([]domain.CartLine, error) {
	var lines []domain.CartLine

	for _, row := range rows {
		line, err := mapCartLineRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapCartLineRowToDomain: %w", err)
		}

		lines = append(lines, line)
	}

	return lines, nil
}
