package auth_test

import (
	"strings"
	"testing"

	"github.com/nikolayk812/sqlcpp-shop/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{name: "right password", hash: hash, password: "s3cret", want: true},
		{name: "wrong password", hash: hash, password: "s3cret!", want: false},
		{name: "empty password", hash: hash, password: "", want: false},
		{name: "missing hash", hash: "", password: "s3cret", want: false},
		{name: "garbage hash", hash: "not-bcrypt", password: "s3cret", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.hash, tt.password))
		})
	}
}

func TestHasherSaltsEachHash(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasherRejectsTooLongPassword(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", auth.MaxPasswordLength+1))
	require.Error(t, err)
}
