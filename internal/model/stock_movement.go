package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types. IN/OUT/ADJUSTMENT are accepted from the admin adjustment
// endpoint; RETURN is written by the order restock path; TRANSFER is reserved
// for warehouse moves and currently has no producer.
const (
	MovementIn         = "IN"
	MovementOut        = "OUT"
	MovementAdjustment = "ADJUSTMENT"
	MovementReturn     = "RETURN"
	MovementTransfer   = "TRANSFER"
)

// StockMovement records one atomic change to a product's stock quantity.
// Rows are append-only: never updated, never deleted.
// Invariant: NewStock == PreviousStock + Quantity.
type StockMovement struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariantID     *uuid.UUID `gorm:"type:uuid"`
	Type          string     `gorm:"type:varchar(20);not null;index"`
	Quantity      int        `gorm:"not null"` // signed effective delta
	PreviousStock int        `gorm:"not null"`
	NewStock      int        `gorm:"not null"`
	Reason        string     `gorm:"not null"`
	ReferenceID   *uuid.UUID `gorm:"type:uuid"` // originating order, if any
	ActorID       *uuid.UUID `gorm:"type:uuid"` // admin who triggered it, if any
	CreatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
