package units

import "github.com/shopspring/decimal"

// FormatWeight renders grams as "<value> <unit>". A missing value renders as "".
func FormatWeight(grams decimal.NullDecimal, unit WeightUnit, precision WeightPrecision) string {
	v := ToDisplayWeight(grams, unit, precision)
	if !v.Valid {
		return ""
	}
	if !unit.Valid() {
		unit = Gram
	}
	return v.Decimal.String() + " " + string(unit)
}

// FormatVolume renders liters as "<value> <unit>". A missing value renders as "".
func FormatVolume(liters decimal.NullDecimal, unit VolumeUnit, precision VolumePrecision) string {
	v := ToDisplayVolume(liters, unit, precision)
	if !v.Valid {
		return ""
	}
	if !unit.Valid() {
		unit = Liter
	}
	return v.Decimal.String() + " " + string(unit)
}

// FormatColor renders an EBC value as "<value> <SCALE>", or "" when missing.
func FormatColor(ebc decimal.NullDecimal, scale ColorScale) string {
	s, ok := ToDisplayColor(ebc, scale)
	if !ok {
		return ""
	}
	if scale != SRM {
		scale = EBC
	}
	return s + " " + upper(scale)
}

func upper(s ColorScale) string {
	if s == SRM {
		return "SRM"
	}
	return "EBC"
}
