package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

type authedHandler func(w http.ResponseWriter, r *http.Request, principal domain.User)

// authed resolves the bearer token to a user before calling next.
func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.writeError(w, r, domain.ErrInvalidToken)
			return
		}

		principal, err := s.svc.Accounts.Authenticate(r.Context(), token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		next(w, r, principal)
	}
}

func (s *Server) admin(next authedHandler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, principal domain.User) {
		if !principal.IsAdmin {
			s.writeError(w, r, fmt.Errorf("%w: admin role required", domain.ErrForbidden))
			return
		}

		next(w, r, principal)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// authorize allows the owner of userID or an admin.
func authorize(principal domain.User, userID int64) error {
	if principal.IsAdmin || principal.ID == userID {
		return nil
	}
	return fmt.Errorf("%w: not the owner of this resource", domain.ErrForbidden)
}
