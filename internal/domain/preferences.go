package domain

import (
	"fmt"

	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// Preferences holds a user's display settings.
type Preferences struct {
	WeightUnit      units.WeightUnit      `yaml:"weight_unit" json:"weight_unit"`
	VolumeUnit      units.VolumeUnit      `yaml:"volume_unit" json:"volume_unit"`
	ColorScale      units.ColorScale      `yaml:"color_scale" json:"color_scale"`
	WeightPrecision units.WeightPrecision `yaml:"weight_precision,omitempty" json:"weight_precision,omitempty"`
	VolumePrecision units.VolumePrecision `yaml:"volume_precision,omitempty" json:"volume_precision,omitempty"`
}

// DefaultPreferences returns metric display settings with default precisions.
func DefaultPreferences() Preferences {
	return Preferences{
		WeightUnit:      units.Gram,
		VolumeUnit:      units.Liter,
		ColorScale:      units.EBC,
		WeightPrecision: units.DefaultWeightPrecision(),
		VolumePrecision: units.DefaultVolumePrecision(),
	}
}

// WithDefaults fills unset fields from DefaultPreferences.
func (p Preferences) WithDefaults() Preferences {
	def := DefaultPreferences()
	if p.WeightUnit == "" {
		p.WeightUnit = def.WeightUnit
	}
	if p.VolumeUnit == "" {
		p.VolumeUnit = def.VolumeUnit
	}
	if p.ColorScale == "" {
		p.ColorScale = def.ColorScale
	}
	p.WeightPrecision = p.WeightPrecision.Merge()
	p.VolumePrecision = p.VolumePrecision.Merge()
	return p
}

// Validate rejects unknown units and negative precisions.
func (p Preferences) Validate() error {
	if !p.WeightUnit.Valid() {
		return fmt.Errorf("%w: weight unit %q", units.ErrInvalidUnit, p.WeightUnit)
	}
	if !p.VolumeUnit.Valid() {
		return fmt.Errorf("%w: volume unit %q", units.ErrInvalidUnit, p.VolumeUnit)
	}
	if _, err := units.ParseColorScale(string(p.ColorScale)); err != nil {
		return err
	}
	for u, d := range p.WeightPrecision {
		if !u.Valid() {
			return fmt.Errorf("%w: weight precision unit %q", units.ErrInvalidUnit, u)
		}
		if d < 0 || d > 10 {
			return fmt.Errorf("%w: weight precision for %s must be between 0 and 10", ErrValidation, u)
		}
	}
	for u, d := range p.VolumePrecision {
		if !u.Valid() {
			return fmt.Errorf("%w: volume precision unit %q", units.ErrInvalidUnit, u)
		}
		if d < 0 || d > 10 {
			return fmt.Errorf("%w: volume precision for %s must be between 0 and 10", ErrValidation, u)
		}
	}
	return nil
}
