package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/nikolayk812/sqlcpp-shop/internal/service"

// Checkout turns a cart into a pending order in a single transaction.
type Checkout struct {
	tx     port.Transactor
	now    func() time.Time
	tracer trace.Tracer
}

type CheckoutOption func(*Checkout)

func WithCheckoutClock(now func() time.Time) CheckoutOption {
	return func(c *Checkout) {
		c.now = now
	}
}

func NewCheckout(tx port.Transactor, opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		tx:     tx,
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Checkout locks the user's cart, creates an order priced at current catalog
// prices and empties the cart. Nothing is persisted unless every step succeeds.
func (s *Checkout) Checkout(ctx context.Context, userID int64) (_ domain.OrderReceipt, err error) {
	ctx, span := s.tracer.Start(ctx, "checkout", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var order domain.Order

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		if _, err := repos.Users.GetUser(ctx, userID); err != nil {
			return err
		}

		cart, err := repos.Carts.LockCart(ctx, userID)
		if err != nil {
			return err
		}

		draft, err := domain.NewOrder(cart, s.now())
		if err != nil {
			return err
		}

		order, err = repos.Orders.CreateOrder(ctx, draft)
		if err != nil {
			return fmt.Errorf("orders.CreateOrder: %w", err)
		}

		if _, err := repos.Carts.ClearCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("carts.ClearCart: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.OrderReceipt{}, err
	}

	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.String("order.total", order.Total.String()),
	)

	return order.Receipt(), nil
}
