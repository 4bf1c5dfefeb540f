package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle axis of an order. Mutated only through
// OrderService.UpdateStatus, which enforces the transition graph below.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderReturned   OrderStatus = "RETURNED"
)

// PaymentStatus is an independent axis from OrderStatus; it has no transition
// graph, only value membership is validated.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// orderStatusFlow maps each status to the set of statuses directly reachable
// from it. Terminal statuses map to an empty set. The map is package-private
// and never mutated after init.
var orderStatusFlow = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderReturned},
	OrderDelivered:  {},
	OrderCancelled:  {},
	OrderReturned:   {},
}

// CanTransition reports whether an order may move from current to requested
// under the normal flow. A no-op (requested == current) is always allowed.
// Admin overrides bypass this check entirely and are handled by the caller.
func CanTransition(current, requested OrderStatus) bool {
	if current == requested {
		return true
	}
	for _, next := range orderStatusFlow[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the successor set for a status.
func NextStatuses(current OrderStatus) []OrderStatus {
	next := orderStatusFlow[current]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether a status has no forward transitions.
func (s OrderStatus) IsTerminal() bool { return len(orderStatusFlow[s]) == 0 }

// Valid reports membership in the OrderStatus enum.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusFlow[s]
	return ok
}

// Valid reports membership in the PaymentStatus enum.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Order is a customer purchase record. Created with status PENDING; status is
// mutated exclusively through the transition validator; orders are never
// deleted (terminal statuses end the lifecycle).
type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number        int64         `gorm:"uniqueIndex;not null"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CustomerName  string        `gorm:"not null"`
	CustomerEmail *string
	ShippingAddr  *string
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items  []OrderItem        `gorm:"foreignKey:OrderID"`
	Events []OrderStatusEvent `gorm:"foreignKey:OrderID"`
}

// OrderItem is one product line on an order. Unit price is captured at order
// time so later price edits don't rewrite history.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"not null"` // snapshot of product name
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
