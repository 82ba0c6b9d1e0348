package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LoginRequest is the payload of POST /api/auth/token/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// AuthController exchanges credentials for access tokens
type AuthController struct {
	users  services.UserService
	tokens TokenIssuer
}

// NewAuthController creates a new AuthController
func NewAuthController(users services.UserService, tokens TokenIssuer) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

// Login godoc
// @Summary Obtain an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Router /api/auth/token/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.users.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := ac.tokens.Issue(user)
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Token generation failed")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Token generation failed"))
		return
	}

	log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User logged in")
	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}
