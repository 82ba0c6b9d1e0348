package models

import (
	"time"
)

// ShortLink maps an opaque token to the canonical URL of a recipe
type ShortLink struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"size:32;uniqueIndex;not null"`
	RecipeID  uint   `gorm:"uniqueIndex;not null"`
	TargetURL string `gorm:"not null"`
	CreatedAt time.Time
}
