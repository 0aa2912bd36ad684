package port

import "context"

// Repositories bound to a single transaction.
type Repositories struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

type Transactor interface {
	// WithinTx runs fn in one transaction. The transaction commits only if fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
