package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

const (
	numericValueOutOfRange = "22003"
	foreignKeyViolation    = "23503"
	uniqueViolation        = "23505"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// dbError maps driver errors: missing rows become NotFound(entity), everything else is a storage failure.
func dbError(op, entity string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(entity)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
