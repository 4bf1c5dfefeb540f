package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products (rings, earrings, bracelets, ...).
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization (categories, not categorys).
func (Category) TableName() string { return "categories" }
