package services

import (
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// UserService manages accounts and their public profiles
type UserService interface {
	// CreateUser registers a new account
	CreateUser(in RegisterInput) (*models.User, error)
	// Authenticate returns the user owning email when password matches
	Authenticate(email, password string) (*models.User, error)
	// GetUserByID retrieves a user by id
	GetUserByID(id uint) (*models.User, error)
	// GetProfile returns the profile of userID as seen by viewerID (0 for anonymous)
	GetProfile(viewerID, userID uint) (models.UserView, error)
	// ListUsers returns a page of profiles ordered by username
	ListUsers(viewerID uint, p Pagination) (models.Page[models.UserView], error)
	// SetAvatar stores an opaque avatar reference
	SetAvatar(userID uint, avatar string) error
	// DeleteAvatar clears the avatar reference
	DeleteAvatar(userID uint) error
	// ChangePassword replaces the password after checking the current one
	ChangePassword(userID uint, current, next string) error
	// DeleteUser removes the account with everything it owns
	DeleteUser(id uint) error
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(in RegisterInput) (*models.User, error) {
	verr := ValidateUsername(in.Username)
	email := strings.TrimSpace(in.Email)
	if email == "" {
		verr.Add("email", "this field is required")
	}
	if in.Password == "" {
		verr.Add("password", "this field is required")
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		verr.Add("role", "role must be user or admin")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	user := &models.User{
		Email:     email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			verr.Add("email", "a user with this email is already registered")
		}
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			verr.Add("username", "username already taken")
		}
		if verr.HasErrors() {
			return verr
		}
		return tx.Create(user).Error
	})
	if isDuplicate(err) {
		// A concurrent registration won the race for the same email or username
		return nil, NewValidationError("email", "a user with this email or username already exists")
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrInvalidCredentials, "unable to log in with provided credentials")
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, newError(ErrInvalidCredentials, "unable to log in with provided credentials")
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return findUser(s.db, id)
}

func (s *userService) GetProfile(viewerID, userID uint) (models.UserView, error) {
	user, err := findUser(s.db, userID)
	if err != nil {
		return models.UserView{}, err
	}
	subscribed, err := subscribedAuthors(s.db, viewerID, []uint{user.ID})
	if err != nil {
		return models.UserView{}, err
	}
	return models.NewUserView(user, subscribed[user.ID]), nil
}

func (s *userService) ListUsers(viewerID uint, p Pagination) (models.Page[models.UserView], error) {
	var page models.Page[models.UserView]
	if err := s.db.Model(&models.User{}).Count(&page.Count).Error; err != nil {
		return page, err
	}

	var users []models.User
	if err := s.db.Order("username").Limit(p.Limit).Offset(p.Offset()).Find(&users).Error; err != nil {
		return page, err
	}

	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	subscribed, err := subscribedAuthors(s.db, viewerID, ids)
	if err != nil {
		return page, err
	}

	page.Results = make([]models.UserView, len(users))
	for i := range users {
		page.Results[i] = models.NewUserView(&users[i], subscribed[users[i].ID])
	}
	return page, nil
}

func (s *userService) SetAvatar(userID uint, avatar string) error {
	if strings.TrimSpace(avatar) == "" {
		return NewValidationError("avatar", "this field is required")
	}
	return s.updateAvatar(userID, avatar)
}

func (s *userService) DeleteAvatar(userID uint) error {
	return s.updateAvatar(userID, "")
}

func (s *userService) updateAvatar(userID uint, avatar string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", avatar)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newError(ErrNotFound, "user not found")
	}
	return nil
}

func (s *userService) ChangePassword(userID uint, current, next string) error {
	user, err := findUser(s.db, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return NewValidationError("current_password", "wrong password")
	}
	if next == "" {
		return NewValidationError("new_password", "this field is required")
	}
	if err := user.SetPassword(next); err != nil {
		return err
	}
	return s.db.Model(user).Update("password_hash", user.PasswordHash).Error
}

func (s *userService) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, id); err != nil {
			return err
		}

		var recipeIDs []uint
		if err := tx.Model(&models.Recipe{}).Where("author_id = ?", id).Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}
		if err := deleteRecipes(tx, recipeIDs); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", id, id).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return err
	}
	log.WithField("user_id", id).Info("User deleted")
	return nil
}

func findUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// subscribedAuthors returns which of authorIDs the viewer follows
func subscribedAuthors(db *gorm.DB, viewerID uint, authorIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(authorIDs))
	if viewerID == 0 || len(authorIDs) == 0 {
		return result, nil
	}

	var followed []uint
	err := db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", viewerID, authorIDs).
		Pluck("author_id", &followed).Error
	if err != nil {
		return nil, err
	}
	for _, id := range followed {
		result[id] = true
	}
	return result, nil
}
