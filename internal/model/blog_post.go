package model

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is a storefront content entry managed from the back-office.
type BlogPost struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	Body      string    `gorm:"type:text;not null"`
	Published bool      `gorm:"not null;default:false"`
	AuthorID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
