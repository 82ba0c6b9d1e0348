package services

import (
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxTagLength = 32

// TagInput carries the fields of a new tag; an empty slug is derived from the name
type TagInput struct {
	Name string `json:"name" binding:"required,max=32"`
	Slug string `json:"slug" binding:"max=32"`
}

// TagService manages recipe tags
type TagService interface {
	ListTags() ([]models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
	CreateTag(in TagInput) (*models.Tag, error)
}

type tagService struct {
	db *gorm.DB
}

// NewTagService creates a new instance of TagService
func NewTagService(db *gorm.DB) TagService {
	return &tagService{db: db}
}

func (s *tagService) ListTags() ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := s.db.Order("name").Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagService) GetTag(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "tag %d not found", id)
		}
		return nil, err
	}
	return &tag, nil
}

func (s *tagService) CreateTag(in TagInput) (*models.Tag, error) {
	tag := models.Tag{Name: strings.TrimSpace(in.Name), Slug: strings.TrimSpace(in.Slug)}
	if tag.Slug == "" {
		tag.Slug = slug.Make(tag.Name)
	}

	verr := &ValidationError{}
	if tag.Name == "" {
		verr.Add("name", "this field is required")
	} else if len(tag.Name) > maxTagLength {
		verr.Add("name", "at most 32 characters")
	}
	if !ValidSlug(tag.Slug) || len(tag.Slug) > maxTagLength {
		verr.Add("slug", "use letters, digits, hyphens or underscores, at most 32 characters")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if err := s.db.Create(&tag).Error; err != nil {
		if isDuplicate(err) {
			return nil, NewValidationError("slug", "a tag with this name or slug already exists")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{"tag_id": tag.ID, "slug": tag.Slug}).Info("Tag created")
	return &tag, nil
}
