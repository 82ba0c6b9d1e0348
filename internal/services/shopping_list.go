package services

import (
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

// ShoppingListService aggregates the ingredients of the recipes in a user's cart
type ShoppingListService interface {
	// ShoppingList sums amounts per (name, unit) over every recipe in the cart
	ShoppingList(userID uint) ([]models.ShoppingListItem, error)
}

type shoppingListService struct {
	db *gorm.DB
}

// NewShoppingListService creates a new instance of ShoppingListService
func NewShoppingListService(db *gorm.DB) ShoppingListService {
	return &shoppingListService{db: db}
}

func (s *shoppingListService) ShoppingList(userID uint) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := s.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FormatShoppingList renders one "name: total (unit)" line per item
func FormatShoppingList(items []models.ShoppingListItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %d (%s)\n", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	return b.String()
}
