package models

import (
	"strings"

	"gorm.io/gorm"
)

// Ingredient is a catalogue entry; the same name may exist once per measurement unit
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:128;not null;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:64;not null;uniqueIndex:idx_ingredient_name_unit"`
	// NameLower is Name folded in Go; SQLite's LOWER and LIKE only fold ASCII
	NameLower string `json:"-" gorm:"size:128;index"`
}

// BeforeSave keeps NameLower in sync with Name
func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	i.NameLower = strings.ToLower(i.Name)
	return nil
}
