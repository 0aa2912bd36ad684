package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
)

// Orders reads placed orders. Prices always come from the order lines, never the catalog.
type Orders struct {
	orders port.OrderRepository
}

func NewOrders(orders port.OrderRepository) *Orders {
	return &Orders{orders: orders}
}

func (s *Orders) List(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	if len(orders) == 0 {
		return nil, domain.NotFound(domain.EntityOrders)
	}

	return orders, nil
}

// Items returns the order with its lines.
func (s *Orders) Items(ctx context.Context, orderID int64) (domain.Order, error) {
	return s.orders.GetOrder(ctx, orderID)
}

func (s *Orders) History(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListOrderHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrderHistory: %w", err)
	}

	if len(orders) == 0 {
		return nil, domain.NotFound(domain.EntityOrders)
	}

	return orders, nil
}
