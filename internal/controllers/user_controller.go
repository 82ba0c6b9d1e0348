package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/middleware"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RegisterRequest is the payload of POST /api/users
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,max=150"`
}

// AvatarRequest is the payload of PUT /api/users/me/avatar
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// SetPasswordRequest is the payload of POST /api/users/set_password
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UserController handles HTTP requests related to users and subscriptions
type UserController interface {
	ListUsers(c *gin.Context)
	Register(c *gin.Context)
	Me(c *gin.Context)
	GetUser(c *gin.Context)
	SetAvatar(c *gin.Context)
	DeleteAvatar(c *gin.Context)
	SetPassword(c *gin.Context)
	ListSubscriptions(c *gin.Context)
	Subscribe(c *gin.Context)
	Unsubscribe(c *gin.Context)
	DeleteUser(c *gin.Context)
}

type userController struct {
	users         services.UserService
	subscriptions services.SubscriptionService
	baseURL       string
	pageSize      int
}

// NewUserController creates a new instance of UserController.
// It registers the "username" binding rule used by RegisterRequest.
func NewUserController(users services.UserService, subscriptions services.SubscriptionService, baseURL string, pageSize int) UserController {
	if err := RegisterValidators(); err != nil {
		log.WithError(err).Error("Failed to register binding validators")
	}
	return &userController{users: users, subscriptions: subscriptions, baseURL: baseURL, pageSize: pageSize}
}

// ListUsers godoc
// @Summary List users
// @Description Paginated list of users ordered by username
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Page[models.UserView]
// @Router /api/users [get]
func (uc *userController) ListUsers(c *gin.Context) {
	p, ok := pagination(c, uc.pageSize)
	if !ok {
		return
	}
	page, err := uc.users.ListUsers(middleware.CurrentUserID(c), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withLinks(c, uc.baseURL, page, p))
}

// Register godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "New user"
// @Success 201 {object} models.UserView
// @Failure 400 {object} models.APIError
// @Router /api/users [post]
func (uc *userController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.users.CreateUser(services.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewUserView(user, false))
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} models.UserView
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/me [get]
func (uc *userController) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	view, err := uc.users.GetProfile(userID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetUser godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserView
// @Failure 404 {object} models.APIError
// @Router /api/users/{id} [get]
func (uc *userController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := uc.users.GetProfile(middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetAvatar godoc
// @Summary Set the current user's avatar
// @Tags users
// @Accept json
// @Produce json
// @Param avatar body AvatarRequest true "Avatar reference"
// @Success 200 {object} AvatarRequest
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/me/avatar [put]
func (uc *userController) SetAvatar(c *gin.Context) {
	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := uc.users.SetAvatar(middleware.CurrentUserID(c), req.Avatar); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// DeleteAvatar godoc
// @Summary Remove the current user's avatar
// @Tags users
// @Success 204
// @Security BearerAuth
// @Router /api/users/me/avatar [delete]
func (uc *userController) DeleteAvatar(c *gin.Context) {
	if err := uc.users.DeleteAvatar(middleware.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetPassword godoc
// @Summary Change the current user's password
// @Tags users
// @Accept json
// @Param passwords body SetPasswordRequest true "Current and new password"
// @Success 204
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/set_password [post]
func (uc *userController) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := uc.users.ChangePassword(middleware.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubscriptions godoc
// @Summary Authors the current user follows
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param recipes_limit query int false "Recipes shown per author"
// @Success 200 {object} models.Page[models.SubscriptionView]
// @Security BearerAuth
// @Router /api/users/subscriptions [get]
func (uc *userController) ListSubscriptions(c *gin.Context) {
	p, ok := pagination(c, uc.pageSize)
	if !ok {
		return
	}
	limit, ok := recipesLimit(c)
	if !ok {
		return
	}
	page, err := uc.subscriptions.ListSubscriptions(middleware.CurrentUserID(c), limit, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withLinks(c, uc.baseURL, page, p))
}

// Subscribe godoc
// @Summary Follow an author
// @Tags users
// @Produce json
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Recipes shown"
// @Success 201 {object} models.SubscriptionView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/{id}/subscribe [post]
func (uc *userController) Subscribe(c *gin.Context) {
	authorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, ok := recipesLimit(c)
	if !ok {
		return
	}
	view, err := uc.subscriptions.Subscribe(middleware.CurrentUserID(c), authorID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Unsubscribe godoc
// @Summary Stop following an author
// @Tags users
// @Param id path int true "Author ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/{id}/subscribe [delete]
func (uc *userController) Unsubscribe(c *gin.Context) {
	authorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := uc.subscriptions.Unsubscribe(middleware.CurrentUserID(c), authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteUser godoc
// @Summary Delete a user and everything they own
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/{id} [delete]
func (uc *userController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := uc.users.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recipesLimit reads recipes_limit; absent means no truncation
func recipesLimit(c *gin.Context) (int, bool) {
	if c.Query("recipes_limit") == "" {
		return services.NoRecipesLimit, true
	}
	n, err := optionalInt(c, "recipes_limit")
	return n, err == nil
}
