package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

type orderRepository struct {
	view
}

func (r *orderRepository) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Lines) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no lines", domain.ErrInvalidInput)
	}

	var created domain.Order

	err := r.write(func(st *state) error {
		if _, ok := st.users[order.UserID]; !ok {
			return domain.NotFound(domain.EntityUser)
		}

		st.nextOrderID++
		created = order
		created.ID = st.nextOrderID
		created.Lines = nil
		st.orders[created.ID] = created

		for _, line := range order.Lines {
			if _, ok := st.products[line.ProductID]; !ok {
				return domain.NotFound(domain.EntityProduct)
			}

			st.nextOrderItemID++
			item := orderItemRow{
				ID:        st.nextOrderItemID,
				OrderID:   created.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			st.orderItems[item.ID] = item

			created.Lines = append(created.Lines, st.orderLine(item))
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return created, nil
}

func (r *orderRepository) GetOrder(_ context.Context, orderID int64) (domain.Order, error) {
	var order domain.Order

	err := r.read(func(st *state) error {
		o, ok := st.orders[orderID]
		if !ok {
			return domain.NotFound(domain.EntityOrder)
		}

		o.Lines = st.orderLines(orderID)
		order = o
		return nil
	})

	return order, err
}

func (r *orderRepository) ListOrders(_ context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.read(func(st *state) error {
		orders = st.ordersOf(userID)
		return nil
	})

	return orders, err
}

func (r *orderRepository) ListOrderHistory(_ context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.read(func(st *state) error {
		orders = st.ordersOf(userID)
		for i := range orders {
			orders[i].Lines = st.orderLines(orders[i].ID)
		}
		return nil
	})

	return orders, err
}

func (st *state) ordersOf(userID int64) []domain.Order {
	orders := make([]domain.Order, 0)
	for _, o := range st.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}

	slices.SortFunc(orders, func(a, b domain.Order) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	return orders
}

func (st *state) orderLines(orderID int64) []domain.OrderLine {
	var lines []domain.OrderLine
	for _, item := range st.orderItems {
		if item.OrderID == orderID {
			lines = append(lines, st.orderLine(item))
		}
	}

	slices.SortFunc(lines, func(a, b domain.OrderLine) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return lines
}

func (st *state) orderLine(item orderItemRow) domain.OrderLine {
	return domain.OrderLine{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Title:     st.products[item.ProductID].Title,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}
