package repository_test

import (
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestCreateUser() {
	defer suite.deleteAll()

	existing := suite.createUser()

	tests := []struct {
		name    string
		user    domain.User
		wantErr error
	}{
		{
			name: "create user: ok",
			user: randomUser(),
		},
		{
			name: "create admin: ok",
			user: func() domain.User {
				u := randomUser()
				u.IsAdmin = true
				return u
			}(),
		},
		{
			name: "duplicate username: error",
			user: func() domain.User {
				u := randomUser()
				u.Username = existing.Username
				return u
			}(),
			wantErr: domain.ErrDuplicateUsername,
		},
		{
			name:    "empty username: error",
			user:    domain.User{Email: "a@b.c", PasswordHash: "x"},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			created, err := suite.users.CreateUser(ctx, tt.user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.NotZero(t, created.ID)
			assert.Equal(t, tt.user.Username, created.Username)
			assert.Equal(t, tt.user.Email, created.Email)
			assert.Equal(t, tt.user.PasswordHash, created.PasswordHash)
			assert.Equal(t, tt.user.IsAdmin, created.IsAdmin)
			assert.False(t, created.CreatedAt.IsZero())

			byID, err := suite.users.GetUser(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, byID)

			byName, err := suite.users.GetUserByUsername(ctx, created.Username)
			require.NoError(t, err)
			assert.Equal(t, created, byName)
		})
	}

	suite.Run("existing user is untouched by a duplicate signup", func() {
		t := suite.T()

		got, err := suite.users.GetUser(t.Context(), existing.ID)
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})
}

func (suite *repositorySuite) TestGetUser() {
	defer suite.deleteAll()

	suite.Run("missing id: not found", func() {
		t := suite.T()

		_, err := suite.users.GetUser(t.Context(), 999_999)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "user not found")
	})

	suite.Run("missing username: not found", func() {
		t := suite.T()

		_, err := suite.users.GetUserByUsername(t.Context(), "nobody")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
