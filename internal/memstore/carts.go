package memstore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

// maxQuantity matches the INTEGER column of the PostgreSQL schema.
const maxQuantity = math.MaxInt32

func checkQuantity(quantity int) error {
	switch {
	case quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	case quantity > maxQuantity:
		return fmt.Errorf("%w: quantity %d is out of range", domain.ErrInvalidInput, quantity)
	}
	return nil
}

type cartRepository struct {
	view
}

func (r *cartRepository) GetCart(_ context.Context, userID int64) (domain.Cart, error) {
	var cart domain.Cart

	err := r.read(func(st *state) error {
		var err error
		cart, err = st.cartOf(userID)
		return err
	})

	return cart, err
}

func (r *cartRepository) LockCart(ctx context.Context, userID int64) (domain.Cart, error) {
	if !r.inTx() {
		return domain.Cart{}, errors.New("LockCart requires a transaction")
	}

	return r.GetCart(ctx, userID)
}

func (r *cartRepository) AddItem(_ context.Context, userID, productID int64, quantity int) (domain.CartLine, error) {
	if err := checkQuantity(quantity); err != nil {
		return domain.CartLine{}, err
	}

	var line domain.CartLine

	err := r.write(func(st *state) error {
		if _, ok := st.users[userID]; !ok {
			return domain.NotFound(domain.EntityUser)
		}
		if _, ok := st.products[productID]; !ok {
			return domain.NotFound(domain.EntityProduct)
		}

		now := r.s.now()

		cart, ok := st.cartRowOf(userID)
		if !ok {
			st.nextCartID++
			cart = cartRow{ID: st.nextCartID, UserID: userID, CreatedAt: now}
		}
		cart.UpdatedAt = now
		st.carts[cart.ID] = cart

		item, ok := st.cartItemOf(cart.ID, productID)
		if ok {
			if item.Quantity > maxQuantity-quantity {
				return fmt.Errorf("%w: quantity %d plus %d is out of range", domain.ErrInvalidInput, item.Quantity, quantity)
			}
			item.Quantity += quantity
		} else {
			st.nextCartItemID++
			item = cartItemRow{
				ID:        st.nextCartItemID,
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
				CreatedAt: now,
			}
		}
		item.UpdatedAt = now
		st.cartItems[item.ID] = item

		line = item.toDomain()
		return nil
	})

	return line, err
}

func (r *cartRepository) SetItemQuantity(_ context.Context, cartID, productID int64, quantity int) (domain.CartLine, error) {
	if err := checkQuantity(quantity); err != nil {
		return domain.CartLine{}, err
	}

	var line domain.CartLine

	err := r.write(func(st *state) error {
		item, ok := st.cartItemOf(cartID, productID)
		if !ok {
			return domain.NotFound(domain.EntityCartItem)
		}

		item.Quantity = quantity
		item.UpdatedAt = r.s.now()
		st.cartItems[item.ID] = item

		line = item.toDomain()
		return nil
	})

	return line, err
}

func (r *cartRepository) DeleteItem(_ context.Context, cartID, productID int64) (bool, error) {
	deleted := false

	err := r.write(func(st *state) error {
		item, ok := st.cartItemOf(cartID, productID)
		if !ok {
			return nil
		}

		delete(st.cartItems, item.ID)
		deleted = true
		return nil
	})

	return deleted, err
}

func (r *cartRepository) ClearCart(_ context.Context, cartID int64) (int64, error) {
	var cleared int64

	err := r.write(func(st *state) error {
		for id, item := range st.cartItems {
			if item.CartID == cartID {
				delete(st.cartItems, id)
				cleared++
			}
		}
		return nil
	})

	return cleared, err
}

func (st *state) cartRowOf(userID int64) (cartRow, bool) {
	for _, c := range st.carts {
		if c.UserID == userID {
			return c, true
		}
	}
	return cartRow{}, false
}

func (st *state) cartItemOf(cartID, productID int64) (cartItemRow, bool) {
	for _, item := range st.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			return item, true
		}
	}
	return cartItemRow{}, false
}

// cartOf joins the user's cart lines with current product data, ordered by line id.
func (st *state) cartOf(userID int64) (domain.Cart, error) {
	row, ok := st.cartRowOf(userID)
	if !ok {
		return domain.Cart{}, domain.NotFound(domain.EntityCart)
	}

	var lines []domain.CartLine
	for _, item := range st.cartItems {
		if item.CartID != row.ID {
			continue
		}

		product, ok := st.products[item.ProductID]
		if !ok {
			continue
		}

		line := item.toDomain()
		line.Title = product.Title
		line.UnitPrice = product.Price
		lines = append(lines, line)
	}

	slices.SortFunc(lines, func(a, b domain.CartLine) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return domain.Cart{
		ID:        row.ID,
		UserID:    row.UserID,
		Lines:     lines,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (item cartItemRow) toDomain() domain.CartLine {
	return domain.CartLine{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
