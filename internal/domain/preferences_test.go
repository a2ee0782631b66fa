package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brewkeeper/brewkeeper/pkg/units"
)

func TestPreferences_WithDefaults(t *testing.T) {
	p := Preferences{WeightUnit: units.Ounce, WeightPrecision: units.WeightPrecision{units.Ounce: 1}}.WithDefaults()

	assert.Equal(t, units.Ounce, p.WeightUnit)
	assert.Equal(t, units.Liter, p.VolumeUnit)
	assert.Equal(t, units.EBC, p.ColorScale)
	assert.Equal(t, 1, p.WeightPrecision[units.Ounce])
	assert.Equal(t, 3, p.WeightPrecision[units.Kilogram])
	assert.Equal(t, 2, p.VolumePrecision[units.Gallon])
	assert.NoError(t, p.Validate())
}

func TestPreferences_Validate(t *testing.T) {
	p := DefaultPreferences()
	p.WeightUnit = "lb"
	assert.ErrorIs(t, p.Validate(), units.ErrInvalidUnit)

	p = DefaultPreferences()
	p.ColorScale = "lovibond"
	assert.ErrorIs(t, p.Validate(), units.ErrInvalidUnit)

	p = DefaultPreferences()
	p.VolumePrecision[units.Gallon] = -1
	assert.ErrorIs(t, p.Validate(), ErrValidation)

	p = DefaultPreferences()
	p.WeightPrecision["lb"] = 2
	assert.ErrorIs(t, p.Validate(), units.ErrInvalidUnit)
}
