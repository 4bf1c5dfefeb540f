package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusEvent is the append-only audit trail of order status and payment
// status changes. One row per accepted change, written in the same
// transaction as the order update. Forced marks admin overrides that bypassed
// the transition graph.
type OrderStatusEvent struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	FromStatus  OrderStatus `gorm:"type:varchar(20);not null"`
	ToStatus    OrderStatus `gorm:"type:varchar(20);not null"`
	PaymentFrom *PaymentStatus `gorm:"type:varchar(20)"`
	PaymentTo   *PaymentStatus `gorm:"type:varchar(20)"`
	Forced      bool           `gorm:"not null;default:false"`
	Note        string
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}
