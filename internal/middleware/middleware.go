package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/auth"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Context keys set by the authentication middleware
const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

var (
	errInvalidScheme = errors.New("authorization header must use the Bearer scheme")
	errEmptyToken    = errors.New("bearer token is empty")
)

// TokenParser verifies bearer tokens
type TokenParser interface {
	Parse(tokenString string) (auth.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the caller's id and role in the context
func JWTAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, present, err := authenticate(c, parser)
		if !present {
			abortUnauthorized(c, "Authentication credentials were not provided")
			return
		}
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth lets anonymous requests through but still rejects malformed or expired tokens
func OptionalJWTAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, present, err := authenticate(c, parser)
		if !present {
			c.Next()
			return
		}
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or 0 for anonymous requests
func CurrentUserID(c *gin.Context) uint {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uint); ok {
			return uid
		}
	}
	return 0
}

// IsAdmin reports whether the authenticated user holds the admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(UserRoleKey) == models.RoleAdmin
}

// authenticate parses the Authorization header; present is false when no credentials were sent
func authenticate(c *gin.Context, parser TokenParser) (claims auth.Claims, present bool, err error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return claims, false, nil
	}

	// The web frontend sends "Token <jwt>"; API clients send "Bearer <jwt>"
	var tokenString string
	switch {
	case strings.HasPrefix(header, "Bearer "):
		tokenString = strings.TrimPrefix(header, "Bearer ")
	case strings.HasPrefix(header, "Token "):
		tokenString = strings.TrimPrefix(header, "Token ")
	default:
		return claims, true, errInvalidScheme
	}
	if strings.TrimSpace(tokenString) == "" {
		return claims, true, errEmptyToken
	}

	claims, err = parser.Parse(strings.TrimSpace(tokenString))
	return claims, true, err
}

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserRoleKey, claims.Role)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, message))
}
