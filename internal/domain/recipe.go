package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// Recipe is a stored brewing recipe. Volumes are canonical liters.
type Recipe struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Style           string              `json:"style,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	BatchSizeLiters decimal.NullDecimal `json:"batch_size_liters"`
	BoilSizeLiters  decimal.NullDecimal `json:"boil_size_liters"`
	BoilTimeMinutes int                 `json:"boil_time_minutes"`
	Efficiency      decimal.NullDecimal `json:"efficiency"` // percent
	Ingredients     []Ingredient        `json:"ingredients"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// Ingredient is one line of a recipe, referencing an inventory item.
type Ingredient struct {
	ItemID       string              `json:"item_id"`
	AmountGrams  decimal.NullDecimal `json:"amount_grams"`
	VolumeLiters decimal.NullDecimal `json:"volume_liters"`
	Use          string              `json:"use,omitempty"`
	TimeMinutes  int                 `json:"time_minutes"`
}

// Validate checks the canonical recipe before it is stored.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: recipe name is required", ErrValidation)
	}
	if negative(r.BatchSizeLiters) || negative(r.BoilSizeLiters) {
		return fmt.Errorf("%w: recipe volumes cannot be negative", ErrValidation)
	}
	if r.BoilTimeMinutes < 0 {
		return fmt.Errorf("%w: boil time cannot be negative", ErrValidation)
	}
	if outsidePercent(r.Efficiency) {
		return fmt.Errorf("%w: efficiency must be between 0 and 100", ErrValidation)
	}
	for i, ing := range r.Ingredients {
		if ing.ItemID == "" {
			return fmt.Errorf("%w: ingredient %d has no item", ErrValidation, i+1)
		}
		if !ing.AmountGrams.Valid && !ing.VolumeLiters.Valid {
			return fmt.Errorf("%w: ingredient %d needs an amount or a volume", ErrValidation, i+1)
		}
		if negative(ing.AmountGrams) || negative(ing.VolumeLiters) {
			return fmt.Errorf("%w: ingredient %d quantity cannot be negative", ErrValidation, i+1)
		}
		if ing.TimeMinutes < 0 {
			return fmt.Errorf("%w: ingredient %d time cannot be negative", ErrValidation, i+1)
		}
	}
	return nil
}

// RecipeInput is a recipe as entered by a user, with volumes in display units.
type RecipeInput struct {
	Name            string            `json:"name" yaml:"name"`
	Style           string            `json:"style,omitempty" yaml:"style,omitempty"`
	Notes           string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	BatchSize       units.Input       `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`
	BoilSize        units.Input       `json:"boil_size,omitempty" yaml:"boil_size,omitempty"`
	VolumeUnit      string            `json:"volume_unit,omitempty" yaml:"volume_unit,omitempty"`
	BoilTimeMinutes int               `json:"boil_time_minutes,omitempty" yaml:"boil_time_minutes,omitempty"`
	Efficiency      units.Input       `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
	Ingredients     []IngredientInput `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
}

// IngredientInput is a recipe line as entered by a user.
type IngredientInput struct {
	ItemID      string      `json:"item_id" yaml:"item_id"`
	Amount      units.Input `json:"amount,omitempty" yaml:"amount,omitempty"`
	WeightUnit  string      `json:"weight_unit,omitempty" yaml:"weight_unit,omitempty"`
	Volume      units.Input `json:"volume,omitempty" yaml:"volume,omitempty"`
	VolumeUnit  string      `json:"volume_unit,omitempty" yaml:"volume_unit,omitempty"`
	Use         string      `json:"use,omitempty" yaml:"use,omitempty"`
	TimeMinutes int         `json:"time_minutes,omitempty" yaml:"time_minutes,omitempty"`
}

// RecipeView is a recipe rendered in a user's display units.
type RecipeView struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Style       string           `json:"style,omitempty" yaml:"style,omitempty"`
	BatchSize   string           `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`
	BoilSize    string           `json:"boil_size,omitempty" yaml:"boil_size,omitempty"`
	BoilTime    string           `json:"boil_time,omitempty" yaml:"boil_time,omitempty"`
	Efficiency  string           `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
	GrainBill   string           `json:"grain_bill,omitempty" yaml:"grain_bill,omitempty"`
	Ingredients []IngredientView `json:"ingredients" yaml:"ingredients"`
	Notes       string           `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IngredientView is a recipe line rendered in display units.
type IngredientView struct {
	ItemID string `json:"item_id" yaml:"item_id"`
	Name   string `json:"name" yaml:"name"`
	Kind   Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Amount string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Use    string `json:"use,omitempty" yaml:"use,omitempty"`
	Time   string `json:"time,omitempty" yaml:"time,omitempty"`
}
