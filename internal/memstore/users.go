package memstore

import (
	"context"
	"fmt"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

type userRepository struct {
	view
}

func (r *userRepository) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	if user.Username == "" {
		return domain.User{}, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	err := r.write(func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == user.Username {
				return domain.ErrDuplicateUsername
			}
		}

		st.nextUserID++
		user.ID = st.nextUserID
		user.CreatedAt = r.s.now()
		st.users[user.ID] = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *userRepository) GetUser(_ context.Context, id int64) (domain.User, error) {
	var user domain.User

	err := r.read(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.NotFound(domain.EntityUser)
		}
		user = u
		return nil
	})

	return user, err
}

func (r *userRepository) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	var user domain.User

	err := r.read(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				user = u
				return nil
			}
		}
		return domain.NotFound(domain.EntityUser)
	})

	return user, err
}
