package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest is admin/manual order entry. Prices are resolved
// server-side from the product catalog; the client only sends quantities.
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerEmail *string            `json:"customer_email" validate:"omitempty,email"`
	ShippingAddr  *string            `json:"shipping_address"`
	Note          *string            `json:"note"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateOrderRequest changes the order status and/or payment status.
// Force bypasses the transition graph (admin override) and is audited.
type UpdateOrderRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Force         bool   `json:"force"`
	Note          string `json:"note"`
}

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderStatusEventResponse struct {
	FromStatus  string  `json:"from_status"`
	ToStatus    string  `json:"to_status"`
	PaymentFrom *string `json:"payment_from,omitempty"`
	PaymentTo   *string `json:"payment_to,omitempty"`
	Forced      bool    `json:"forced"`
	Note        string  `json:"note,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type OrderResponse struct {
	ID            string                     `json:"id"`
	Number        int64                      `json:"number"`
	Status        string                     `json:"status"`
	PaymentStatus string                     `json:"payment_status"`
	CustomerName  string                     `json:"customer_name"`
	CustomerEmail *string                    `json:"customer_email,omitempty"`
	ShippingAddr  *string                    `json:"shipping_address,omitempty"`
	Subtotal      decimal.Decimal            `json:"subtotal"`
	DiscountTotal decimal.Decimal            `json:"discount_total"`
	Total         decimal.Decimal            `json:"total"`
	Note          *string                    `json:"note,omitempty"`
	Items         []OrderItemResponse        `json:"items,omitempty"`
	Events        []OrderStatusEventResponse `json:"events,omitempty"`
	CreatedAt     string                     `json:"created_at"`
	UpdatedAt     string                     `json:"updated_at"`
}

// OrderFilter holds query params for GET /v1/orders.
type OrderFilter struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=50"`
}

type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
