package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/franciscosanchezn/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel aligns the package logger with the application log level
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// respondError maps a service error to its status code and APIError payload
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Validation failed", fieldDetails(verr.Fields)))
		return
	}

	var serr *services.Error
	if errors.As(err, &serr) {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, serr.Message))
			return
		case errors.Is(err, services.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrAlreadyExists, serr.Message))
			return
		case errors.Is(err, services.ErrNotPresent):
			c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrNotPresent, serr.Message))
			return
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden, serr.Message))
			return
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidCredentials, serr.Message))
			return
		}
	}

	log.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"error":  err.Error(),
	}).Error("Unhandled service error")
	c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
}

// respondBindError renders payload problems found by gin binding in the same per-field shape
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			name := jsonFieldName(fe)
			fields[name] = append(fields[name], fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Validation failed", fieldDetails(fields)))
		return
	}
	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
}

func fieldDetails(fields map[string][]string) map[string]interface{} {
	details := make(map[string]interface{}, len(fields))
	for field, messages := range fields {
		details[field] = messages
	}
	return details
}

// jsonFieldName turns a namespace such as RecipeRequest.Ingredients[0].Amount into ingredients
func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.IndexAny(ns, ".["); i >= 0 {
		ns = ns[:i]
	}
	if ns == "" {
		ns = fe.Field()
	}
	return toSnake(ns)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "username":
		return "only letters, digits and @/./+/-/_ are allowed, and \"me\" is reserved"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, fmt.Sprintf("Invalid %s format", name)))
		return 0, false
	}
	return uint(id), true
}

// pagination reads the page and limit query parameters
func pagination(c *gin.Context, defaultLimit int) (services.Pagination, bool) {
	page, err := optionalInt(c, "page")
	if err != nil {
		return services.Pagination{}, false
	}
	limit, err := optionalInt(c, "limit")
	if err != nil {
		return services.Pagination{}, false
	}
	return services.NewPagination(page, limit, defaultLimit), true
}

// optionalInt parses a non-negative integer query parameter, 0 when absent; it responds 400 on failure
func optionalInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err == nil && n < 0 {
		err = fmt.Errorf("negative value")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Validation failed",
			map[string]interface{}{name: []string{"a non-negative integer is required"}}))
		return 0, err
	}
	return n, nil
}

// withLinks fills next and previous with absolute URLs to the neighbouring pages
func withLinks[T any](c *gin.Context, baseURL string, page models.Page[T], p services.Pagination) models.Page[T] {
	if page.Results == nil {
		page.Results = []T{}
	}
	link := func(n int) *string {
		u := url.URL{Path: c.Request.URL.Path}
		q := c.Request.URL.Query()
		q.Set("page", strconv.Itoa(n))
		q.Set("limit", strconv.Itoa(p.Limit))
		u.RawQuery = q.Encode()
		s := strings.TrimSuffix(baseURL, "/") + u.String()
		return &s
	}
	if p.HasNext(page.Count) {
		page.Next = link(p.Page + 1)
	}
	if p.Page > 1 {
		page.Previous = link(p.Page - 1)
	}
	return page
}
