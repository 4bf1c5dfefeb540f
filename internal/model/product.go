package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item (ring, necklace, ...). StockQuantity is a derived
// running total: it is mutated only by applying a StockMovement and always
// equals the latest movement's NewStock.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity int           `gorm:"not null;default:0"`
	LowStockAt    int           `gorm:"not null;default:5"`
	Active        bool          `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
