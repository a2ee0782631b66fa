package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// InputParser handles parsing of preference files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// preferencesFile is the on-disk layout. Units are plain strings so that
// aliases such as "ounces" or "litre" are accepted.
type preferencesFile struct {
	Display struct {
		WeightUnit      string         `yaml:"weight_unit"`
		VolumeUnit      string         `yaml:"volume_unit"`
		ColorScale      string         `yaml:"color_scale"`
		WeightPrecision map[string]int `yaml:"weight_precision"`
		VolumePrecision map[string]int `yaml:"volume_precision"`
	} `yaml:"display"`
}

// LoadFromFile loads display preferences from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (domain.Preferences, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// LoadOrDefault loads preferences from filename, returning the defaults when
// the file does not exist.
func (ip *InputParser) LoadOrDefault(filename string) (domain.Preferences, error) {
	if filename == "" {
		return domain.DefaultPreferences(), nil
	}
	prefs, err := ip.LoadFromFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultPreferences(), nil
	}
	return prefs, err
}

// Parse decodes and validates preferences YAML
func (ip *InputParser) Parse(data []byte) (domain.Preferences, error) {
	var raw preferencesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	prefs, err := ip.resolve(&raw)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("preferences validation failed: %w", err)
	}
	if err := prefs.Validate(); err != nil {
		return domain.Preferences{}, fmt.Errorf("preferences validation failed: %w", err)
	}
	return prefs, nil
}

// resolve turns the raw file into typed preferences, filling defaults
func (ip *InputParser) resolve(raw *preferencesFile) (domain.Preferences, error) {
	var prefs domain.Preferences
	d := raw.Display

	if d.WeightUnit != "" {
		u, err := units.ParseWeightUnit(d.WeightUnit)
		if err != nil {
			return prefs, err
		}
		prefs.WeightUnit = u
	}
	if d.VolumeUnit != "" {
		u, err := units.ParseVolumeUnit(d.VolumeUnit)
		if err != nil {
			return prefs, err
		}
		prefs.VolumeUnit = u
	}
	if d.ColorScale != "" {
		s, err := units.ParseColorScale(d.ColorScale)
		if err != nil {
			return prefs, err
		}
		prefs.ColorScale = s
	}

	if len(d.WeightPrecision) > 0 {
		prefs.WeightPrecision = units.WeightPrecision{}
		for name, places := range d.WeightPrecision {
			u, err := units.ParseWeightUnit(name)
			if err != nil {
				return prefs, fmt.Errorf("weight_precision: %w", err)
			}
			prefs.WeightPrecision[u] = places
		}
	}
	if len(d.VolumePrecision) > 0 {
		prefs.VolumePrecision = units.VolumePrecision{}
		for name, places := range d.VolumePrecision {
			u, err := units.ParseVolumeUnit(name)
			if err != nil {
				return prefs, fmt.Errorf("volume_precision: %w", err)
			}
			prefs.VolumePrecision[u] = places
		}
	}

	return prefs.WithDefaults(), nil
}

// Marshal renders preferences in the file layout read by Parse
func (ip *InputParser) Marshal(prefs domain.Preferences) ([]byte, error) {
	var raw preferencesFile
	raw.Display.WeightUnit = string(prefs.WeightUnit)
	raw.Display.VolumeUnit = string(prefs.VolumeUnit)
	raw.Display.ColorScale = string(prefs.ColorScale)
	if len(prefs.WeightPrecision) > 0 {
		raw.Display.WeightPrecision = make(map[string]int, len(prefs.WeightPrecision))
		for u, d := range prefs.WeightPrecision {
			raw.Display.WeightPrecision[string(u)] = d
		}
	}
	if len(prefs.VolumePrecision) > 0 {
		raw.Display.VolumePrecision = make(map[string]int, len(prefs.VolumePrecision))
		for u, d := range prefs.VolumePrecision {
			raw.Display.VolumePrecision[string(u)] = d
		}
	}
	return yaml.Marshal(&raw)
}

// SaveToFile writes preferences to filename
func (ip *InputParser) SaveToFile(prefs domain.Preferences, filename string) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid preferences: %w", err)
	}
	data, err := ip.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
