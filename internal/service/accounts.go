package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/sqlcpp-shop/internal/auth"
	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/port"
)

type Registration struct {
	Username string
	Email    string
	Password string
}

func (r Registration) normalize() (Registration, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	switch {
	case r.Username == "":
		return r, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	case r.Password == "":
		return r, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	case len(r.Password) > auth.MaxPasswordLength:
		return r, fmt.Errorf("%w: password is longer than %d bytes", domain.ErrInvalidInput, auth.MaxPasswordLength)
	case !strings.Contains(r.Email, "@"):
		return r, fmt.Errorf("%w: email is not valid", domain.ErrInvalidInput)
	}

	return r, nil
}

// Accounts registers users, verifies credentials and issues bearer tokens.
type Accounts struct {
	users    port.UserRepository
	hasher   *auth.Hasher
	tokens   *auth.TokenIssuer
	tokenTTL time.Duration
}

func NewAccounts(users port.UserRepository, hasher *auth.Hasher, tokens *auth.TokenIssuer, tokenTTL time.Duration) *Accounts {
	if tokenTTL <= 0 {
		tokenTTL = auth.DefaultTokenTTL
	}

	return &Accounts{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

func (s *Accounts) Register(ctx context.Context, reg Registration) (domain.User, error) {
	return s.create(ctx, reg, false)
}

// EnsureAdmin creates the admin user unless a user with that name already exists.
// The boolean reports whether a user was created. An existing user without admin
// rights is an ErrConflict.
func (s *Accounts) EnsureAdmin(ctx context.Context, reg Registration) (domain.User, bool, error) {
	username := strings.TrimSpace(reg.Username)

	existing, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return existingAdmin(existing)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, false, fmt.Errorf("users.GetUserByUsername: %w", err)
	}

	user, err := s.create(ctx, reg, true)
	if errors.Is(err, domain.ErrDuplicateUsername) {
		// created concurrently by another instance
		existing, err = s.users.GetUserByUsername(ctx, username)
		if err != nil {
			return domain.User{}, false, fmt.Errorf("users.GetUserByUsername: %w", err)
		}
		return existingAdmin(existing)
	}
	if err != nil {
		return domain.User{}, false, err
	}

	return user, true, nil
}

func existingAdmin(user domain.User) (domain.User, bool, error) {
	if !user.IsAdmin {
		return domain.User{}, false, fmt.Errorf("%w: user %q exists without admin rights", domain.ErrConflict, user.Username)
	}
	return user, false, nil
}

func (s *Accounts) create(ctx context.Context, reg Registration, isAdmin bool) (domain.User, error) {
	reg, err := reg.normalize()
	if err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hasher.Hash: %w", err)
	}

	user, err := s.users.CreateUser(ctx, domain.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return domain.User{}, domain.ErrDuplicateUsername
		}
		return domain.User{}, fmt.Errorf("users.CreateUser: %w", err)
	}

	return user, nil
}

// Verify returns the user whose password matches. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Accounts) Verify(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		s.hasher.Verify("", password)
		return domain.User{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify("", password)
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("users.GetUserByUsername: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *Accounts) Login(ctx context.Context, username, password string) (auth.Token, error) {
	user, err := s.Verify(ctx, username, password)
	if err != nil {
		return auth.Token{}, err
	}

	token, err := s.tokens.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return auth.Token{}, fmt.Errorf("tokens.Issue: %w", err)
	}

	return token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Accounts) Authenticate(ctx context.Context, token string) (domain.User, error) {
	username, err := s.tokens.Validate(token)
	if err != nil {
		return domain.User{}, err
	}

	return s.CurrentUser(ctx, username)
}

// CurrentUser loads the token subject. A subject without a user is an invalid token.
func (s *Accounts) CurrentUser(ctx context.Context, username string) (domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidToken
		}
		return domain.User{}, fmt.Errorf("users.GetUserByUsername: %w", err)
	}

	return user, nil
}
