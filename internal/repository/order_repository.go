package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sqlcpp-shop/internal/db"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Lines) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no lines", domain.ErrInvalidInput)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.CreateOrder(ctx, db.CreateOrderParams{
			UserID:        order.UserID,
			TotalAmount:   order.Total.Amount,
			TotalCurrency: order.Total.Currency.String(),
			Status:        order.Status,
			CreatedAt:     order.CreatedAt,
		})
		if err != nil {
			if pgErrorCode(err) == foreignKeyViolation {
				return domain.Order{}, domain.NotFound(domain.EntityUser)
			}
			return domain.Order{}, dbError("q.CreateOrder", domain.EntityOrder, err)
		}

		created, err := mapOrderToDomain(dbOrder)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
		}

		for i, line := range order.Lines {
			qty, err := toInt32(line.Quantity)
			if err != nil {
				return domain.Order{}, fmt.Errorf("line[%d]: %w", i, err)
			}

			item, err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:       dbOrder.ID,
				ProductID:     line.ProductID,
				Quantity:      qty,
				PriceAmount:   line.UnitPrice.Amount,
				PriceCurrency: line.UnitPrice.Currency.String(),
			})
			if err != nil {
				if pgErrorCode(err) == foreignKeyViolation {
					return domain.Order{}, domain.NotFound(domain.EntityProduct)
				}
				return domain.Order{}, dbError("q.CreateOrderItem", domain.EntityOrder, err)
			}

			createdLine, err := mapOrderLineToDomain(item.ID, item.OrderID, item.ProductID, line.Title, item.Quantity, item.PriceAmount, item.PriceCurrency)
			if err != nil {
				return domain.Order{}, fmt.Errorf("mapOrderLineToDomain: %w", err)
			}

			created.Lines = append(created.Lines, createdLine)
		}

		return created, nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	dbOrder, err := r.q.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, dbError("q.GetOrder", domain.EntityOrder, err)
	}

	order, err := mapOrderToDomain(dbOrder)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	rows, err := r.q.ListOrderLines(ctx, orderID)
	if err != nil {
		return domain.Order{}, dbError("q.ListOrderLines", domain.EntityOrder, err)
	}

	for _, row := range rows {
		line, err := mapOrderLineToDomain(row.ID, row.OrderID, row.ProductID, row.Title, row.Quantity, row.PriceAmount, row.PriceCurrency)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapOrderLineToDomain: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	dbOrders, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, dbError("q.ListOrdersByUser", domain.EntityOrders, err)
	}

	orders := make([]domain.Order, 0, len(dbOrders))
	for _, dbOrder := range dbOrders {
		order, err := mapOrderToDomain(dbOrder)
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) ListOrderHistory(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := r.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.ListOrderLinesByUser(ctx, userID)
	if err != nil {
		return nil, dbError("q.ListOrderLinesByUser", domain.EntityOrders, err)
	}

	byOrder := make(map[int64][]domain.OrderLine, len(orders))
	for _, row := range rows {
		line, err := mapOrderLineToDomain(row.ID, row.OrderID, row.ProductID, row.Title, row.Quantity, row.PriceAmount, row.PriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("mapOrderLineToDomain: %w", err)
		}
		byOrder[row.OrderID] = append(byOrder[row.OrderID], line)
	}

	for i := range orders {
		orders[i].Lines = byOrder[orders[i].ID]
	}

	return orders, nil
}

func mapOrderToDomain(row db.Order) (domain.Order, error) {
	parsedCurrency, err := currency.ParseISO(row.TotalCurrency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.TotalCurrency, err)
	}

	return domain.Order{
		ID:        row.ID,
		UserID:    row.UserID,
		Total:     domain.Money{Amount: row.TotalAmount, Currency: parsedCurrency},
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapOrderLineToDomain(id, orderID, productID int64, title string, quantity int32, amount decimal.Decimal, unit string) (domain.OrderLine, error) {
	parsedCurrency, err := currency.ParseISO(unit)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("currency[%s] is not valid: %w", unit, err)
	}

	return domain.OrderLine{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Title:     title,
		Quantity:  int(quantity),
		UnitPrice: domain.Money{Amount: amount, Currency: parsedCurrency},
	}, nil
}
