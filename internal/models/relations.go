package models

import (
	"time"
)

// Favorite marks a recipe as favorited by a user
type Favorite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	RecipeID  uint   `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index"`
	Recipe    Recipe `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// Link sets the owning user and the referenced recipe
func (f *Favorite) Link(userID, recipeID uint) {
	f.UserID = userID
	f.RecipeID = recipeID
}

// ShoppingCartEntry puts a recipe into a user's shopping cart
type ShoppingCartEntry struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	RecipeID  uint   `gorm:"not null;uniqueIndex:idx_cart_user_recipe;index"`
	Recipe    Recipe `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// Link sets the owning user and the referenced recipe
func (e *ShoppingCartEntry) Link(userID, recipeID uint) {
	e.UserID = userID
	e.RecipeID = recipeID
}

// Subscription records that UserID follows AuthorID; a user cannot follow themselves
type Subscription struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_subscription_user_author;check:chk_subscription_not_self,user_id <> author_id"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  uint `gorm:"not null;uniqueIndex:idx_subscription_user_author;index"`
	Author    User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
