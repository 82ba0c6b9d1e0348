package models

import (
	"time"
)

// Recipe is owned by its author and composed of tagged ingredients
type Recipe struct {
	ID          uint   `gorm:"primaryKey"`
	AuthorID    uint   `gorm:"not null;index"`
	Author      User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name        string `gorm:"size:256;not null"`
	Image       string
	Text        string `gorm:"type:text"`
	CookingTime int    `gorm:"not null"`
	Tags        []Tag  `gorm:"many2many:recipe_tags"`
	Ingredients []RecipeIngredient
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// RecipeIngredient is the join row carrying the amount of an ingredient in a recipe
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID"`
	Amount       int        `gorm:"not null"`
}

// Short returns the compact representation used by favorites, carts and subscriptions
func (r *Recipe) Short() RecipeShort {
	return RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
