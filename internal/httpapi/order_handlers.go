package httpapi

import (
	"net/http"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
)

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request, principal domain.User) {
	userID, err := ownedUserID(r, principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	orders, err := s.svc.Orders.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrdersResponse(orders))
}

func (s *Server) orderItems(w http.ResponseWriter, r *http.Request, principal domain.User) {
	orderID, err := pathID(r, "order")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	order, err := s.svc.Orders.Items(r.Context(), orderID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := authorize(principal, order.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]orderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		items = append(items, toOrderLineResponse(l))
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) orderHistory(w http.ResponseWriter, r *http.Request, principal domain.User) {
	userID, err := ownedUserID(r, principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	orders, err := s.svc.Orders.History(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrdersResponse(orders))
}
