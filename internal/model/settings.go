package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreSettings is a singleton row of store-wide configuration.
// AllowNegativeStock gates the insufficient-stock guard on admin adjustments;
// it never applies to order placement, which always enforces availability.
type StoreSettings struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreName          string    `gorm:"not null;default:'Gemstore'"`
	Currency           string    `gorm:"type:varchar(3);not null;default:'USD'"`
	AllowNegativeStock bool      `gorm:"not null;default:false"`
	LowStockThreshold  int       `gorm:"not null;default:5"`
	NotifyOnStatusChange bool    `gorm:"not null;default:true"`
	UpdatedAt            time.Time
}

// TableName keeps the singleton table name singular.
func (StoreSettings) TableName() string { return "store_settings" }
