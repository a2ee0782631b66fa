package units

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Empty is the "no value" marker. It is distinct from a present zero.
var Empty = decimal.NullDecimal{}

// Value wraps v as a present amount. NaN and infinities become Empty.
func Value(v float64) decimal.NullDecimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Empty
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
}

// ParseAmount parses user-entered text. Surrounding space is ignored and a
// single comma is read as the decimal separator when no dot is present.
// Empty or non-numeric text yields Empty.
func ParseAmount(text string) decimal.NullDecimal {
	s := strings.TrimSpace(text)
	if s == "" {
		return Empty
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Empty
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// GramsTo converts grams to unit without rounding. Unknown units are treated as grams.
func GramsTo(grams float64, unit WeightUnit) float64 {
	switch unit {
	case Ounce:
		return grams / GramsPerOunce
	case Kilogram:
		return grams / GramsPerKilogram
	default:
		return grams
	}
}

// WeightToGrams converts a value in unit to grams. Unknown units are treated as grams.
func WeightToGrams(v float64, unit WeightUnit) float64 {
	switch unit {
	case Ounce:
		return v * GramsPerOunce
	case Kilogram:
		return v * GramsPerKilogram
	default:
		return v
	}
}

// LitersTo converts liters to unit without rounding. Unknown units are treated as liters.
func LitersTo(liters float64, unit VolumeUnit) float64 {
	switch unit {
	case Gallon:
		return liters / LitersPerGallon
	case Milliliter:
		return liters * MillilitersPerL
	default:
		return liters
	}
}

// VolumeToLiters converts a value in unit to liters. Unknown units are treated as liters.
func VolumeToLiters(v float64, unit VolumeUnit) float64 {
	switch unit {
	case Gallon:
		return v * LitersPerGallon
	case Milliliter:
		return v / MillilitersPerL
	default:
		return v
	}
}

// ToDisplayWeight converts canonical grams into unit, rounded to the
// precision configured for that unit. A missing input yields Empty.
func ToDisplayWeight(grams decimal.NullDecimal, unit WeightUnit, precision WeightPrecision) decimal.NullDecimal {
	if !grams.Valid {
		return Empty
	}
	v := GramsTo(grams.Decimal.InexactFloat64(), unit)
	return Value(Round(v, precision.For(unit)))
}

// ToDisplayVolume converts canonical liters into unit, rounded to the
// precision configured for that unit. Liters are rounded like every other unit.
func ToDisplayVolume(liters decimal.NullDecimal, unit VolumeUnit, precision VolumePrecision) decimal.NullDecimal {
	if !liters.Valid {
		return Empty
	}
	v := LitersTo(liters.Decimal.InexactFloat64(), unit)
	return Value(Round(v, precision.For(unit)))
}

// ToLiters converts user input expressed in unit back to canonical liters.
// Empty or non-numeric input yields Empty, never zero.
func ToLiters(input string, unit VolumeUnit) decimal.NullDecimal {
	v := ParseAmount(input)
	if !v.Valid {
		return Empty
	}
	return Value(VolumeToLiters(v.Decimal.InexactFloat64(), unit))
}

// ToGrams converts user input expressed in unit back to canonical grams.
// Empty or non-numeric input yields Empty, never zero.
func ToGrams(input string, unit WeightUnit) decimal.NullDecimal {
	v := ParseAmount(input)
	if !v.Valid {
		return Empty
	}
	return Value(WeightToGrams(v.Decimal.InexactFloat64(), unit))
}

// ToDisplaySRM converts an EBC color value to SRM text with one decimal.
// Missing and zero values report false.
func ToDisplaySRM(ebc decimal.NullDecimal) (string, bool) {
	if !ebc.Valid || ebc.Decimal.IsZero() {
		return "", false
	}
	srm := Round(ebc.Decimal.InexactFloat64()/EBCPerSRM, 1)
	return decimal.NewFromFloat(srm).StringFixed(1), true
}

// ToDisplayColor renders an EBC value on the requested scale with one decimal.
// Unknown scales render EBC.
func ToDisplayColor(ebc decimal.NullDecimal, scale ColorScale) (string, bool) {
	if scale == SRM {
		return ToDisplaySRM(ebc)
	}
	if !ebc.Valid || ebc.Decimal.IsZero() {
		return "", false
	}
	return decimal.NewFromFloat(Round(ebc.Decimal.InexactFloat64(), 1)).StringFixed(1), true
}

// SRMToEBC converts an SRM value to canonical EBC.
func SRMToEBC(srm float64) float64 {
	return srm * EBCPerSRM
}

// NormalizeQuantity converts a user-entered weight into canonical grams for
// storage. Unlike the display conversions it fails on unparseable or
// non-positive input.
func NormalizeQuantity(input string, unit WeightUnit) (decimal.Decimal, error) {
	v := ParseAmount(input)
	if !v.Valid {
		return decimal.Zero, ErrInvalidQuantity
	}
	if !v.Decimal.IsPositive() {
		return decimal.Zero, ErrNonPositiveQuantity
	}
	return decimal.NewFromFloat(WeightToGrams(v.Decimal.InexactFloat64(), unit)), nil
}

// NormalizeVolume is the volume counterpart of NormalizeQuantity.
func NormalizeVolume(input string, unit VolumeUnit) (decimal.Decimal, error) {
	v := ParseAmount(input)
	if !v.Valid {
		return decimal.Zero, ErrInvalidQuantity
	}
	if !v.Decimal.IsPositive() {
		return decimal.Zero, ErrNonPositiveQuantity
	}
	return decimal.NewFromFloat(VolumeToLiters(v.Decimal.InexactFloat64(), unit)), nil
}
