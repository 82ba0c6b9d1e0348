package database

import (
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCartEntry{},
		&models.Subscription{},
		&models.ShortLink{},
	}
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	log.Info("Running schema migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := backfillIngredientNames(db); err != nil {
		return fmt.Errorf("backfill ingredient names: %w", err)
	}
	log.Info("Schema migrations completed")
	return nil
}

// backfillIngredientNames fills name_lower for rows stored before the column existed
func backfillIngredientNames(db *gorm.DB) error {
	var pending []models.Ingredient
	if err := db.Where("name_lower IS NULL OR name_lower = ''").Find(&pending).Error; err != nil {
		return err
	}
	for _, ingredient := range pending {
		err := db.Model(&models.Ingredient{}).Where("id = ?", ingredient.ID).
			UpdateColumn("name_lower", strings.ToLower(ingredient.Name)).Error
		if err != nil {
			return err
		}
	}
	if len(pending) > 0 {
		log.WithField("rows", len(pending)).Info("Backfilled ingredient search names")
	}
	return nil
}
