package units

import (
	"errors"
	"fmt"
	"strings"
)

// Conversion factors. Canonical storage units are grams, liters and EBC.
const (
	GramsPerOunce    = 28.349523125
	GramsPerKilogram = 1000.0
	LitersPerGallon  = 3.78541
	MillilitersPerL  = 1000.0
	EBCPerSRM        = 1.97
)

var (
	// ErrInvalidUnit is returned when a unit tag is not recognised.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrInvalidQuantity is returned when a quantity cannot be parsed as a number.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrNonPositiveQuantity is returned when a stored quantity must be greater than zero.
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
)

// WeightUnit selects the unit weights are displayed in.
type WeightUnit string

const (
	Ounce    WeightUnit = "oz"
	Gram     WeightUnit = "g"
	Kilogram WeightUnit = "kg"
)

// VolumeUnit selects the unit volumes are displayed in.
type VolumeUnit string

const (
	Gallon     VolumeUnit = "gal"
	Liter      VolumeUnit = "l"
	Milliliter VolumeUnit = "ml"
)

// ColorScale selects how malt and beer color is displayed.
type ColorScale string

const (
	EBC ColorScale = "ebc"
	SRM ColorScale = "srm"
)

var weightAliases = map[string]WeightUnit{
	"oz":        Ounce,
	"ounce":     Ounce,
	"ounces":    Ounce,
	"g":         Gram,
	"gram":      Gram,
	"grams":     Gram,
	"kg":        Kilogram,
	"kilogram":  Kilogram,
	"kilograms": Kilogram,
}

var volumeAliases = map[string]VolumeUnit{
	"gal":         Gallon,
	"gallon":      Gallon,
	"gallons":     Gallon,
	"l":           Liter,
	"liter":       Liter,
	"liters":      Liter,
	"litre":       Liter,
	"litres":      Liter,
	"ml":          Milliliter,
	"milliliter":  Milliliter,
	"milliliters": Milliliter,
	"millilitre":  Milliliter,
	"millilitres": Milliliter,
}

// ParseWeightUnit resolves a weight unit tag or one of its spelled-out aliases.
func ParseWeightUnit(s string) (WeightUnit, error) {
	if u, ok := weightAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: weight unit %q", ErrInvalidUnit, s)
}

// ParseVolumeUnit resolves a volume unit tag or one of its spelled-out aliases.
func ParseVolumeUnit(s string) (VolumeUnit, error) {
	if u, ok := volumeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: volume unit %q", ErrInvalidUnit, s)
}

// ParseColorScale resolves "ebc" or "srm".
func ParseColorScale(s string) (ColorScale, error) {
	switch ColorScale(strings.ToLower(strings.TrimSpace(s))) {
	case EBC:
		return EBC, nil
	case SRM:
		return SRM, nil
	}
	return "", fmt.Errorf("%w: color scale %q", ErrInvalidUnit, s)
}

// Valid reports whether u is one of the known weight units.
func (u WeightUnit) Valid() bool {
	return u == Ounce || u == Gram || u == Kilogram
}

// Valid reports whether u is one of the known volume units.
func (u VolumeUnit) Valid() bool {
	return u == Gallon || u == Liter || u == Milliliter
}

func (u WeightUnit) String() string { return string(u) }
func (u VolumeUnit) String() string { return string(u) }
