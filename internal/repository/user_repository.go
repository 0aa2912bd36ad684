package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sqlcpp-shop/internal/db"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{q: db.New(pool)}
}

func NewUserWithTx(tx pgx.Tx) port.UserRepository {
	return &userRepository{q: db.New(tx)}
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Username == "" {
		return domain.User{}, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	row, err := r.q.CreateUser(ctx, db.CreateUserParams{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
	})
	if err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return domain.User{}, domain.ErrDuplicateUsername
		}
		return domain.User{}, dbError("q.CreateUser", domain.EntityUser, err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetUser(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, dbError("q.GetUser", domain.EntityUser, err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, dbError("q.GetUserByUsername", domain.EntityUser, err)
	}

	return mapUserToDomain(row), nil
}

func mapUserToDomain(row db.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		IsAdmin:      row.IsAdmin,
		CreatedAt:    row.CreatedAt,
	}
}
