package services

import (
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NoRecipesLimit disables truncation of an author's recipe list
const NoRecipesLimit = -1

// SubscriptionService lets users follow authors
type SubscriptionService interface {
	// Subscribe makes userID follow authorID and returns the author's subscription view
	Subscribe(userID, authorID uint, recipesLimit int) (models.SubscriptionView, error)
	// Unsubscribe removes an existing subscription
	Unsubscribe(userID, authorID uint) error
	// ListSubscriptions returns a page of the authors userID follows
	ListSubscriptions(userID uint, recipesLimit int, p Pagination) (models.Page[models.SubscriptionView], error)
	// AuthorRecipes lists an author's recipes newest first, truncated to limit unless it is NoRecipesLimit
	AuthorRecipes(authorID uint, limit int) ([]models.RecipeShort, error)
}

type subscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new instance of SubscriptionService
func NewSubscriptionService(db *gorm.DB) SubscriptionService {
	return &subscriptionService{db: db}
}

func (s *subscriptionService) Subscribe(userID, authorID uint, recipesLimit int) (view models.SubscriptionView, err error) {
	defer func() { observeRelation("subscription", "add", err) }()

	if userID == authorID {
		return view, NewValidationError("author", "cannot subscribe to self")
	}

	if _, err := findUser(s.db, userID); err != nil {
		return view, err
	}
	author, err := findUser(s.db, authorID)
	if err != nil {
		return view, err
	}

	var count int64
	if err := s.db.Model(&models.Subscription{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error; err != nil {
		return view, err
	}
	if count > 0 {
		return view, newError(ErrAlreadyExists, "already subscribed to %s", author.Username)
	}

	if err := s.db.Create(&models.Subscription{UserID: userID, AuthorID: authorID}).Error; err != nil {
		if isDuplicate(err) {
			return view, newError(ErrAlreadyExists, "already subscribed to %s", author.Username)
		}
		if isMissingReference(err) {
			return view, newError(ErrNotFound, "user not found")
		}
		return view, err
	}

	log.WithFields(logrus.Fields{"user_id": userID, "author_id": authorID}).Debug("Subscribed")
	return s.view(author, true, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(userID, authorID uint) (err error) {
	defer func() { observeRelation("subscription", "remove", err) }()

	author, err := findUser(s.db, authorID)
	if err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newError(ErrNotPresent, "not subscribed to %s", author.Username)
	}
	return nil
}

func (s *subscriptionService) ListSubscriptions(userID uint, recipesLimit int, p Pagination) (models.Page[models.SubscriptionView], error) {
	var page models.Page[models.SubscriptionView]

	followed := s.db.Model(&models.Subscription{}).Select("author_id").Where("user_id = ?", userID)
	if err := s.db.Model(&models.User{}).Where("id IN (?)", followed).Count(&page.Count).Error; err != nil {
		return page, err
	}

	var authors []models.User
	err := s.db.Where("id IN (?)", followed).
		Order("username").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&authors).Error
	if err != nil {
		return page, err
	}

	page.Results = make([]models.SubscriptionView, 0, len(authors))
	for i := range authors {
		view, err := s.view(&authors[i], true, recipesLimit)
		if err != nil {
			return page, err
		}
		page.Results = append(page.Results, view)
	}
	return page, nil
}

func (s *subscriptionService) AuthorRecipes(authorID uint, limit int) ([]models.RecipeShort, error) {
	q := s.db.Where("author_id = ?", authorID).Order("created_at DESC, id DESC")
	if limit != NoRecipesLimit {
		q = q.Limit(limit)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	shorts := make([]models.RecipeShort, len(recipes))
	for i := range recipes {
		shorts[i] = recipes[i].Short()
	}
	return shorts, nil
}

func (s *subscriptionService) view(author *models.User, subscribed bool, recipesLimit int) (models.SubscriptionView, error) {
	view := models.SubscriptionView{UserView: models.NewUserView(author, subscribed)}

	recipes, err := s.AuthorRecipes(author.ID, recipesLimit)
	if err != nil {
		return view, err
	}
	view.Recipes = recipes

	err = s.db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&view.RecipesCount).Error
	return view, err
}
