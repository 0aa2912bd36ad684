package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/service"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.svc.Accounts.Register(r.Context(), service.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "user registered", slog.Int64("user_id", user.ID))
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// login takes form fields, as OAuth2 password-flow clients send them.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid form: %w", domain.ErrInvalidInput, err))
		return
	}

	token, err := s.svc.Accounts.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token.Value,
		TokenType:   "bearer",
		ExpiresAt:   token.ExpiresAt,
	})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, principal domain.User) {
	writeJSON(w, http.StatusOK, toUserResponse(principal))
}
