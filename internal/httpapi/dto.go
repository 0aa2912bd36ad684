package httpapi

import (
	"time"

	"github.com/nikolayk812/sqlcpp-shop/internal/domain"
	"github.com/shopspring/decimal"
)

type statusResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type productRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// productPatchRequest uses pointers so absent fields stay unchanged.
type productPatchRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
}

func (req productPatchRequest) toDomain() domain.ProductPatch {
	return domain.ProductPatch{
		Title:       optional(req.Title),
		Description: optional(req.Description),
		Price:       optional(req.Price),
		Stock:       optional(req.Stock),
		Image:       optional(req.Image),
		Category:    optional(req.Category),
	}
}

func optional[T any](v *T) domain.Optional[T] {
	if v == nil {
		return domain.Optional[T]{}
	}
	return domain.Some(*v)
}

type productResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       amount(p.Price),
		Currency:    p.Price.Currency.String(),
		Stock:       p.Stock,
		Image:       p.Image,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

type cartLineResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

func toCartLineResponse(l domain.CartLine) cartLineResponse {
	return cartLineResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Title:     l.Title,
		Price:     amount(l.UnitPrice),
		Currency:  l.UnitPrice.Currency.String(),
		Quantity:  l.Quantity,
		Subtotal:  amount(l.Subtotal()),
	}
}

type cartItemResponse struct {
	Message  string            `json:"message"`
	CartItem *cartLineResponse `json:"cart_item,omitempty"`
}

type cartViewResponse struct {
	CartID   int64              `json:"cart_id"`
	UserID   int64              `json:"user_id"`
	Items    []cartLineResponse `json:"items"`
	Total    string             `json:"total"`
	Currency string             `json:"currency"`
}

func toCartViewResponse(v domain.CartView) cartViewResponse {
	items := make([]cartLineResponse, 0, len(v.Cart.Lines))
	for _, l := range v.Cart.Lines {
		items = append(items, toCartLineResponse(l))
	}

	return cartViewResponse{
		CartID:   v.Cart.ID,
		UserID:   v.Cart.UserID,
		Items:    items,
		Total:    amount(v.Total),
		Currency: v.Total.Currency.String(),
	}
}

type checkoutResponse struct {
	Message     string    `json:"message"`
	OrderID     int64     `json:"order_id"`
	TotalAmount string    `json:"total_amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type orderLineResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	Subtotal  string `json:"subtotal"`
}

type orderResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"user_id"`
	TotalAmount string              `json:"total_amount"`
	Currency    string              `json:"currency"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []orderLineResponse `json:"items,omitempty"`
}

func toOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: amount(o.Total),
		Currency:    o.Total.Currency.String(),
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}

	for _, l := range o.Lines {
		resp.Items = append(resp.Items, toOrderLineResponse(l))
	}

	return resp
}

func toOrderLineResponse(l domain.OrderLine) orderLineResponse {
	return orderLineResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Title:     l.Title,
		Quantity:  l.Quantity,
		Price:     amount(l.UnitPrice),
		Currency:  l.UnitPrice.Currency.String(),
		Subtotal:  amount(l.Subtotal()),
	}
}

func toOrdersResponse(orders []domain.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

func amount(m domain.Money) string {
	return m.Amount.StringFixed(2)
}
