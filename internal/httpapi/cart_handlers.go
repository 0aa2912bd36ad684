package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

// ownedUserID reads the {user} path segment and checks the caller may act on it.
func ownedUserID(r *http.Request, principal domain.User) (int64, error) {
	userID, err := pathID(r, "user")
	if err != nil {
		return 0, err
	}

	if err := authorize(principal, userID); err != nil {
		return 0, err
	}

	return userID, nil
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request, principal domain.User) {
	userID, err := ownedUserID(r, principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	line, err := s.svc.Carts.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item := toCartLineResponse(line)
	writeJSON(w, http.StatusOK, cartItemResponse{Message: "Item added to cart", CartItem: &item})
}

func (s *Server) viewCart(w http.ResponseWriter, r *http.Request, principal domain.User) {
	userID, err := ownedUserID(r, principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.svc.Carts.View(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartViewResponse(view))
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request, principal domain.User) {
	userID, err := ownedUserID(r, principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	productID, err := pathID(r, "product")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Quantity == nil {
		s.writeError(w, r, fmt.Errorf("%w: quantity is required", domain.ErrInvalidInput))
		return
	}

	update, err := s.svc.Carts.UpdateItem(r.Context(), userID, productID, *req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if update.Removed {
		writeJSON(w, http.StatusOK, cartItemResponse{Message: "Item removed from cart"})
		return
	}

	item := toCartLineResponse(update.Line)
	writeJSON(w, http.StatusOK, cartItemResponse{Message: "Item quantity updated", CartItem: &item})
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request, principal domain.User) {
	userID, err := ownedUserID(r, principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	receipt, err := s.svc.Checkout.Checkout(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "order placed",
		slog.Int64("order_id", receipt.OrderID),
		slog.Int64("user_id", userID),
		slog.String("total", receipt.Total.String()),
	)

	writeJSON(w, http.StatusOK, checkoutResponse{
		Message:     "Order placed successfully",
		OrderID:     receipt.OrderID,
		TotalAmount: amount(receipt.Total),
		Currency:    receipt.Total.Currency.String(),
		Status:      receipt.Status,
		CreatedAt:   receipt.CreatedAt,
	})
}
