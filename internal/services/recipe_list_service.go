package services

import (
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecipeListService maintains a per-user set of recipes, such as favorites or the shopping cart
type RecipeListService interface {
	// Add puts the recipe into the user's list and returns its short form
	Add(userID, recipeID uint) (models.RecipeShort, error)
	// Remove takes the recipe out of the user's list
	Remove(userID, recipeID uint) error
	// Contains reports whether the recipe is in the user's list
	Contains(userID, recipeID uint) (bool, error)
}

// userRecipeRow is a gorm model linking a user to a recipe
type userRecipeRow[T any] interface {
	*T
	Link(userID, recipeID uint)
}

type recipeListService[T any, PT userRecipeRow[T]] struct {
	db       *gorm.DB
	relation string
	label    string
}

// NewFavoriteService creates the favorites list
func NewFavoriteService(db *gorm.DB) RecipeListService {
	return &recipeListService[models.Favorite, *models.Favorite]{db: db, relation: "favorite", label: "favorites"}
}

// NewShoppingCartService creates the shopping cart list
func NewShoppingCartService(db *gorm.DB) RecipeListService {
	return &recipeListService[models.ShoppingCartEntry, *models.ShoppingCartEntry]{db: db, relation: "shopping_cart", label: "shopping cart"}
}

func (s *recipeListService[T, PT]) Add(userID, recipeID uint) (short models.RecipeShort, err error) {
	defer func() { observeRelation(s.relation, "add", err) }()

	if _, err := findUser(s.db, userID); err != nil {
		return short, err
	}

	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if isNotFound(err) {
			return short, newError(ErrNotFound, "recipe %d not found", recipeID)
		}
		return short, err
	}

	exists, err := s.Contains(userID, recipeID)
	if err != nil {
		return short, err
	}
	if exists {
		return short, newError(ErrAlreadyExists, "recipe %d is already in %s", recipeID, s.label)
	}

	row := PT(new(T))
	row.Link(userID, recipeID)
	if err := s.db.Create(row).Error; err != nil {
		if isDuplicate(err) {
			// A concurrent request added the same recipe between the check and the insert
			return short, newError(ErrAlreadyExists, "recipe %d is already in %s", recipeID, s.label)
		}
		if isMissingReference(err) {
			return short, newError(ErrNotFound, "user or recipe no longer exists")
		}
		return short, err
	}

	log.WithFields(logrus.Fields{
		"relation":  s.relation,
		"user_id":   userID,
		"recipe_id": recipeID,
	}).Debug("Recipe added")
	return recipe.Short(), nil
}

func (s *recipeListService[T, PT]) Remove(userID, recipeID uint) (err error) {
	defer func() { observeRelation(s.relation, "remove", err) }()

	var count int64
	if err := s.db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return newError(ErrNotFound, "recipe %d not found", recipeID)
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(PT(new(T)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newError(ErrNotPresent, "recipe %d is not in %s", recipeID, s.label)
	}
	return nil
}

func (s *recipeListService[T, PT]) Contains(userID, recipeID uint) (bool, error) {
	var count int64
	err := s.db.Model(PT(new(T))).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}
