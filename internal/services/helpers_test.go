package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/database"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "foodgram_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Role:     models.RoleUser,
	}
	require.NoError(t, user.SetPassword("secret-"+username))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name, Slug: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// createRecipe stores a recipe through the service so every invariant is applied
func createRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, tag *models.Tag, items ...IngredientAmount) models.RecipeView {
	t.Helper()

	view, err := NewRecipeService(db, DefaultLimits()).CreateRecipe(author.ID, RecipeInput{
		Ingredients: items,
		Tags:        []uint{tag.ID},
		Image:       fmt.Sprintf("recipes/images/%s.png", name),
		Name:        name,
		Text:        "Mix and serve.",
		CookingTime: 15,
	})
	require.NoError(t, err)
	return view
}

type fixture struct {
	db        *gorm.DB
	author    *models.User
	reader    *models.User
	tag       *models.Tag
	salt      *models.Ingredient
	recipe    models.RecipeView
	favorites RecipeListService
	cart      RecipeListService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	f := &fixture{
		db:        db,
		author:    createUser(t, db, "author"),
		reader:    createUser(t, db, "reader"),
		tag:       createTag(t, db, "dinner"),
		salt:      createIngredient(t, db, "salt", "g"),
		favorites: NewFavoriteService(db),
		cart:      NewShoppingCartService(db),
	}
	f.recipe = createRecipe(t, db, f.author, "soup", f.tag, IngredientAmount{ID: f.salt.ID, Amount: 5})
	return f
}

func (f *fixture) countFavorites(userID, recipeID uint) int64 {
	var n int64
	f.db.Model(&models.Favorite{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&n)
	return n
}

func (f *fixture) countCart(userID, recipeID uint) int64 {
	var n int64
	f.db.Model(&models.ShoppingCartEntry{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&n)
	return n
}
