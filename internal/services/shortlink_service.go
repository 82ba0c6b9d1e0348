package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// DefaultTokenLength is the length of generated short link tokens
	DefaultTokenLength = 6

	maxTokenAttempts = 5
	tokenAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	apiPrefix        = "/api"
)

// errLinkConflict is returned by a store when the token or the recipe is already linked
var errLinkConflict = errors.New("short link conflict")

// ShortLinkStore persists token to target mappings, at most one per recipe
type ShortLinkStore interface {
	// FindByRecipe returns the token issued for a recipe, if any
	FindByRecipe(ctx context.Context, recipeID uint) (string, bool, error)
	// Save stores a new mapping or fails with errLinkConflict
	Save(ctx context.Context, token string, recipeID uint, target string) error
	// Target returns the stored URL for token, if any
	Target(ctx context.Context, token string) (string, bool, error)
}

// ShortLinkService issues and resolves short links to recipes
type ShortLinkService interface {
	// GetLink returns the short URL of a recipe, issuing a token on first use
	GetLink(ctx context.Context, recipeID uint) (string, error)
	// Resolve returns the public URL a token redirects to
	Resolve(ctx context.Context, token string) (string, error)
}

type shortLinkService struct {
	db          *gorm.DB
	store       ShortLinkStore
	baseURL     string
	tokenLength int
	newToken    func(n int) (string, error)
}

// NewShortLinkService creates a new instance of ShortLinkService.
// baseURL is the public origin used for both the short link and its target.
func NewShortLinkService(db *gorm.DB, store ShortLinkStore, baseURL string, tokenLength int) ShortLinkService {
	if tokenLength <= 0 {
		tokenLength = DefaultTokenLength
	}
	return &shortLinkService{
		db:          db,
		store:       store,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		tokenLength: tokenLength,
		newToken:    randomToken,
	}
}

func (s *shortLinkService) GetLink(ctx context.Context, recipeID uint) (string, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", newError(ErrNotFound, "recipe %d not found", recipeID)
	}

	target := fmt.Sprintf("%s%s/recipes/%d/", s.baseURL, apiPrefix, recipeID)
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, found, err := s.store.FindByRecipe(ctx, recipeID)
		if err != nil {
			return "", err
		}
		if found {
			return s.shortURL(token), nil
		}

		token, err = s.newToken(s.tokenLength)
		if err != nil {
			return "", err
		}
		err = s.store.Save(ctx, token, recipeID, target)
		if errors.Is(err, errLinkConflict) {
			log.WithFields(logrus.Fields{"recipe_id": recipeID, "attempt": attempt}).Debug("Short link conflict, retrying")
			continue
		}
		if err != nil {
			return "", err
		}

		shortLinksIssued.Inc()
		log.WithFields(logrus.Fields{"recipe_id": recipeID, "token": token}).Info("Short link issued")
		return s.shortURL(token), nil
	}
	return "", fmt.Errorf("could not issue a unique short link for recipe %d after %d attempts", recipeID, maxTokenAttempts)
}

func (s *shortLinkService) Resolve(ctx context.Context, token string) (string, error) {
	target, found, err := s.store.Target(ctx, token)
	if err != nil {
		return "", err
	}
	if !found {
		shortLinkResolutions.WithLabelValues("miss").Inc()
		return "", newError(ErrNotFound, "short link not found")
	}
	shortLinkResolutions.WithLabelValues("hit").Inc()
	return publicURL(target), nil
}

func (s *shortLinkService) shortURL(token string) string {
	return s.baseURL + "/s/" + token
}

// publicURL strips the API prefix so the link opens the frontend page of the recipe
func publicURL(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	if strings.HasPrefix(u.Path, apiPrefix+"/") {
		u.Path = strings.TrimPrefix(u.Path, apiPrefix)
	}
	return u.String()
}

func randomToken(n int) (string, error) {
	size := big.NewInt(int64(len(tokenAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b[i] = tokenAlphabet[idx.Int64()]
	}
	return string(b), nil
}
