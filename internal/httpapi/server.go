// Package httpapi exposes the shop services over HTTP/JSON.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikolayk812/sqlcpp-shop/internal/service"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Accounts *service.Accounts
	Catalog  *service.Catalog
	Carts    *service.Carts
	Checkout *service.Checkout
	Orders   *service.Orders
}

type Server struct {
	svc   Services
	ready Pinger
	log   *slog.Logger
}

func NewServer(svc Services, ready Pinger, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	return &Server{
		svc:   svc,
		ready: ready,
		log:   log,
	}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.healthz)
	mux.HandleFunc("GET /readyz", s.readyz)

	mux.HandleFunc("POST /signup", s.signup)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /users/me", s.authed(s.me))

	mux.HandleFunc("GET /products", s.listProducts)
	mux.HandleFunc("GET /products/{id}", s.getProduct)
	mux.HandleFunc("POST /upload", s.admin(s.createProduct))
	mux.HandleFunc("PUT /update/{id}", s.admin(s.updateProduct))
	mux.HandleFunc("DELETE /delete/{id}", s.admin(s.deleteProduct))

	mux.HandleFunc("POST /cart/{user}/add", s.authed(s.addCartItem))
	mux.HandleFunc("GET /cart/{user}/view", s.authed(s.viewCart))
	mux.HandleFunc("PUT /cart/{user}/update/{product}", s.authed(s.updateCartItem))
	mux.HandleFunc("POST /checkout/{user}", s.authed(s.checkout))

	mux.HandleFunc("GET /orders/{user}", s.authed(s.listOrders))
	mux.HandleFunc("GET /orders/{order}/items", s.authed(s.orderItems))
	mux.HandleFunc("GET /order-history/{user}", s.authed(s.orderHistory))

	var h http.Handler = mux
	h = s.accessLog(h)
	h = requestID(h)

	return otelhttp.NewHandler(h, "shop-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/readyz"
		}),
	)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.ready != nil {
		if err := s.ready.Ping(ctx); err != nil {
			s.log.WarnContext(ctx, "readiness check failed", slog.Any("err", err))
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
			return
		}
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "ready"})
}
