package services

import (
	"context"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

type gormShortLinkStore struct {
	db *gorm.DB
}

// NewGormShortLinkStore keeps short links in the short_links table
func NewGormShortLinkStore(db *gorm.DB) ShortLinkStore {
	return &gormShortLinkStore{db: db}
}

func (s *gormShortLinkStore) FindByRecipe(ctx context.Context, recipeID uint) (string, bool, error) {
	var link models.ShortLink
	err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&link).Error
	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return link.Token, true, nil
}

func (s *gormShortLinkStore) Save(ctx context.Context, token string, recipeID uint, target string) error {
	err := s.db.WithContext(ctx).Create(&models.ShortLink{Token: token, RecipeID: recipeID, TargetURL: target}).Error
	if isDuplicate(err) {
		return errLinkConflict
	}
	return err
}

func (s *gormShortLinkStore) Target(ctx context.Context, token string) (string, bool, error) {
	var link models.ShortLink
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&link).Error
	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return link.TargetURL, true, nil
}
