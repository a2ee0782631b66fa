package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "1 oz", FormatWeight(Value(28.349523125), Ounce, nil))
	assert.Equal(t, "1.5 kg", FormatWeight(Value(1500), Kilogram, nil))
	assert.Equal(t, "13 g", FormatWeight(Value(12.6), WeightUnit("lb"), nil))
	assert.Equal(t, "", FormatWeight(Empty, Ounce, nil))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "1 gal", FormatVolume(Value(3.78541), Gallon, nil))
	assert.Equal(t, "250 ml", FormatVolume(Value(0.25), Milliliter, nil))
	assert.Equal(t, "", FormatVolume(Empty, Liter, nil))
}

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "20.0 SRM", FormatColor(Value(39.4), SRM))
	assert.Equal(t, "39.4 EBC", FormatColor(Value(39.4), EBC))
	assert.Equal(t, "", FormatColor(Value(0), SRM))
}

func TestParseUnits(t *testing.T) {
	w, err := ParseWeightUnit(" Ounces ")
	require.NoError(t, err)
	assert.Equal(t, Ounce, w)

	_, err = ParseWeightUnit("lb")
	assert.ErrorIs(t, err, ErrInvalidUnit)

	v, err := ParseVolumeUnit("Litre")
	require.NoError(t, err)
	assert.Equal(t, Liter, v)

	_, err = ParseVolumeUnit("pint")
	assert.ErrorIs(t, err, ErrInvalidUnit)

	c, err := ParseColorScale("SRM")
	require.NoError(t, err)
	assert.Equal(t, SRM, c)

	_, err = ParseColorScale("lovibond")
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestPrecisionMerge(t *testing.T) {
	p := WeightPrecision{Ounce: 1}.Merge()
	assert.Equal(t, 1, p[Ounce])
	assert.Equal(t, 0, p[Gram])
	assert.Equal(t, 3, p[Kilogram])

	v := VolumePrecision{Milliliter: 1}.Merge()
	assert.Equal(t, 2, v[Gallon])
	assert.Equal(t, 1, v[Milliliter])
	assert.Equal(t, 2, VolumePrecision(nil).For(VolumeUnit("bbl")))
}
