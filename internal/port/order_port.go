package port

import (
	"context"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

type OrderRepository interface {
	// CreateOrder stores the order and all of its lines.
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	// ListOrders returns the user's orders without lines.
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	// ListOrderHistory returns the user's orders with their lines.
	ListOrderHistory(ctx context.Context, userID int64) ([]domain.Order, error)
}
