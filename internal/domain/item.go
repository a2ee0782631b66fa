package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewkeeper/brewkeeper/pkg/units"
)

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps every input validation failure.
	ErrValidation = errors.New("validation failed")
)

// Kind is the inventory category an item belongs to.
type Kind string

const (
	KindFermentable Kind = "fermentable"
	KindHop         Kind = "hop"
	KindMisc        Kind = "misc"
	KindYeast       Kind = "yeast"
)

// Kinds lists every inventory kind in display order.
var Kinds = []Kind{KindFermentable, KindHop, KindMisc, KindYeast}

// ParseKind resolves a kind name, accepting plurals.
func ParseKind(s string) (Kind, error) {
	k := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	switch Kind(k) {
	case KindFermentable, KindHop, KindMisc, KindYeast:
		return Kind(k), nil
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrValidation, s)
}

// Item is an inventory record. All quantities are stored in canonical units:
// grams, liters and EBC.
type Item struct {
	ID       string `json:"id" yaml:"id"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Name     string `json:"name" yaml:"name"`
	Supplier string `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`

	AmountGrams  decimal.NullDecimal `json:"amount_grams" yaml:"-"`
	VolumeLiters decimal.NullDecimal `json:"volume_liters" yaml:"-"`

	// Fermentables
	ColorEBC decimal.NullDecimal `json:"color_ebc" yaml:"-"`

	// Hops
	AlphaAcid decimal.NullDecimal `json:"alpha_acid" yaml:"-"` // percent
	Form      string              `json:"form,omitempty" yaml:"form,omitempty"`

	// Yeasts
	Laboratory  string              `json:"laboratory,omitempty" yaml:"laboratory,omitempty"`
	ProductID   string              `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	Attenuation decimal.NullDecimal `json:"attenuation" yaml:"-"` // percent

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// Validate checks the canonical record before it is stored.
func (it *Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := ParseKind(string(it.Kind)); err != nil {
		return err
	}
	if negative(it.AmountGrams) {
		return fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	}
	if negative(it.VolumeLiters) {
		return fmt.Errorf("%w: volume cannot be negative", ErrValidation)
	}
	if negative(it.ColorEBC) {
		return fmt.Errorf("%w: color cannot be negative", ErrValidation)
	}
	if outsidePercent(it.AlphaAcid) {
		return fmt.Errorf("%w: alpha acid must be between 0 and 100", ErrValidation)
	}
	if outsidePercent(it.Attenuation) {
		return fmt.Errorf("%w: attenuation must be between 0 and 100", ErrValidation)
	}
	return nil
}

func negative(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsNegative()
}

func outsidePercent(d decimal.NullDecimal) bool {
	return d.Valid && (d.Decimal.IsNegative() || d.Decimal.GreaterThan(hundred))
}

// ItemInput is an item as entered by a user, with quantities in display units.
type ItemInput struct {
	Kind        string      `json:"kind" yaml:"kind"`
	Name        string      `json:"name" yaml:"name"`
	Supplier    string      `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Notes       string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Amount      units.Input `json:"amount,omitempty" yaml:"amount,omitempty"`
	WeightUnit  string      `json:"weight_unit,omitempty" yaml:"weight_unit,omitempty"`
	Volume      units.Input `json:"volume,omitempty" yaml:"volume,omitempty"`
	VolumeUnit  string      `json:"volume_unit,omitempty" yaml:"volume_unit,omitempty"`
	Color       units.Input `json:"color,omitempty" yaml:"color,omitempty"`
	ColorScale  string      `json:"color_scale,omitempty" yaml:"color_scale,omitempty"`
	AlphaAcid   units.Input `json:"alpha_acid,omitempty" yaml:"alpha_acid,omitempty"`
	Form        string      `json:"form,omitempty" yaml:"form,omitempty"`
	Laboratory  string      `json:"laboratory,omitempty" yaml:"laboratory,omitempty"`
	ProductID   string      `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	Attenuation units.Input `json:"attenuation,omitempty" yaml:"attenuation,omitempty"`
}

// ItemView is an item rendered in a user's display units.
type ItemView struct {
	ID          string `json:"id" yaml:"id"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Name        string `json:"name" yaml:"name"`
	Supplier    string `json:"supplier,omitempty" yaml:"supplier,omitempty"`
	Amount      string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Volume      string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
	AlphaAcid   string `json:"alpha_acid,omitempty" yaml:"alpha_acid,omitempty"`
	Form        string `json:"form,omitempty" yaml:"form,omitempty"`
	Laboratory  string `json:"laboratory,omitempty" yaml:"laboratory,omitempty"`
	ProductID   string `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	Attenuation string `json:"attenuation,omitempty" yaml:"attenuation,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ItemFilter narrows List and Search results. Zero values match everything.
type ItemFilter struct {
	Kind  Kind
	Query string
}
