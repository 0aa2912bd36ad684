package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.NotFound(domain.EntityCart), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("x: %w", domain.NotFound(domain.EntityOrder)), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", domain.ErrDuplicateUsername, http.StatusBadRequest, "DUPLICATE_USERNAME"},
		{"invalid input", fmt.Errorf("%w: bad", domain.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"token", domain.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"storage", fmt.Errorf("q.GetCart: %w", domain.ErrStorage), http.StatusInternalServerError, "INTERNAL"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := httpStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
