package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrCurrencyMismatch   = errors.New("currency mismatch")
	ErrStorage            = errors.New("storage failure")
)

const (
	EntityUser      = "user"
	EntityProduct   = "product"
	EntityProducts  = "products"
	EntityCart      = "cart"
	EntityCartItem  = "cart item"
	EntityCartItems = "cart items"
	EntityOrder     = "order"
	EntityOrders    = "orders"
)

// NotFoundError reports a missing entity. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}
