package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/nikolayk812/sqlcpp-shop/internal/service"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.svc.Catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	product, err := s.svc.Catalog.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request, principal domain.User) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	product, err := s.svc.Catalog.Create(r.Context(), service.NewProduct{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Stock:       req.Stock,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "product created",
		slog.Int64("product_id", product.ID),
		slog.Int64("admin_id", principal.ID),
	)
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request, _ domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req productPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	product, err := s.svc.Catalog.Update(r.Context(), id, req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request, principal domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.Catalog.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "product deleted",
		slog.Int64("product_id", id),
		slog.Int64("admin_id", principal.ID),
	)
	writeJSON(w, http.StatusOK, messageResponse{Message: "product deleted successfully"})
}
