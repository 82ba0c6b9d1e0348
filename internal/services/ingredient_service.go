package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/franciscosanchezn/gin-foodgram-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 500

// IngredientService exposes the read-only ingredient catalogue
type IngredientService interface {
	// ListIngredients returns ingredients whose name starts with prefix, ignoring case
	ListIngredients(prefix string) ([]models.Ingredient, error)
	// GetIngredient retrieves an ingredient by id
	GetIngredient(id uint) (*models.Ingredient, error)
	// ImportCSV loads "name,measurement_unit" rows after a header line and returns how many were added
	ImportCSV(r io.Reader) (int64, error)
}

type ingredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new instance of IngredientService
func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func (s *ingredientService) ListIngredients(prefix string) ([]models.Ingredient, error) {
	q := s.db.Order("name").Order("measurement_unit")
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		q = q.Where("name_lower LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(prefix))+"%")
	}

	ingredients := []models.Ingredient{}
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetIngredient(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "ingredient %d not found", id)
		}
		return nil, err
	}
	return &ingredient, nil
}

func (s *ingredientService) ImportCSV(r io.Reader) (int64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	var batch []models.Ingredient
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 2 || strings.TrimSpace(record[0]) == "" || strings.TrimSpace(record[1]) == "" {
			return 0, fmt.Errorf("line %d: expected name and measurement unit", line)
		}
		batch = append(batch, models.Ingredient{
			Name:            strings.TrimSpace(record[0]),
			MeasurementUnit: strings.TrimSpace(record[1]),
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&batch, importBatchSize)
	if result.Error != nil {
		return 0, result.Error
	}

	log.WithFields(logrus.Fields{"rows": len(batch), "imported": result.RowsAffected}).Info("Ingredients imported")
	return result.RowsAffected, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
