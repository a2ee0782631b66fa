package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

// ConversionResponse is the body of every /api/convert endpoint. Value is
// null when the input was missing or not a number.
type ConversionResponse struct {
	Input string              `json:"input"`
	Unit  string              `json:"unit"`
	Value decimal.NullDecimal `json:"value"`
	Text  string              `json:"text"`
}

// handleConvertWeight renders ?grams= in ?unit= (or the preferred unit).
func (s *Server) handleConvertWeight(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	unit, err := weightParam(r, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := precisionParam(r, func(d int) { prefs.WeightPrecision[unit] = d }); err != nil {
		s.writeErr(w, r, err)
		return
	}

	input := r.URL.Query().Get("grams")
	grams := units.ParseAmount(input)
	s.writeJSON(w, http.StatusOK, ConversionResponse{
		Input: input,
		Unit:  unit.String(),
		Value: units.ToDisplayWeight(grams, unit, prefs.WeightPrecision),
		Text:  units.FormatWeight(grams, unit, prefs.WeightPrecision),
	})
}

// handleConvertVolume renders ?liters= in ?unit= (or the preferred unit).
func (s *Server) handleConvertVolume(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	unit, err := volumeParam(r, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := precisionParam(r, func(d int) { prefs.VolumePrecision[unit] = d }); err != nil {
		s.writeErr(w, r, err)
		return
	}

	input := r.URL.Query().Get("liters")
	liters := units.ParseAmount(input)
	s.writeJSON(w, http.StatusOK, ConversionResponse{
		Input: input,
		Unit:  unit.String(),
		Value: units.ToDisplayVolume(liters, unit, prefs.VolumePrecision),
		Text:  units.FormatVolume(liters, unit, prefs.VolumePrecision),
	})
}

// handleConvertSRM renders ?ebc= as SRM text.
func (s *Server) handleConvertSRM(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("ebc")
	resp := ConversionResponse{Input: input, Unit: string(units.SRM), Value: units.Empty}
	if text, ok := units.ToDisplaySRM(units.ParseAmount(input)); ok {
		resp.Text = text
		resp.Value = units.ParseAmount(text)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleConvertLiters converts ?input= in ?unit= back to canonical liters.
func (s *Server) handleConvertLiters(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	unit, err := volumeParam(r, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	input := r.URL.Query().Get("input")
	liters := units.ToLiters(input, unit)
	s.writeJSON(w, http.StatusOK, ConversionResponse{
		Input: input,
		Unit:  unit.String(),
		Value: liters,
		Text:  canonicalText(liters, "l"),
	})
}

// handleConvertGrams converts ?input= in ?unit= back to canonical grams.
func (s *Server) handleConvertGrams(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	unit, err := weightParam(r, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	input := r.URL.Query().Get("input")
	grams := units.ToGrams(input, unit)
	s.writeJSON(w, http.StatusOK, ConversionResponse{
		Input: input,
		Unit:  unit.String(),
		Value: grams,
		Text:  canonicalText(grams, "g"),
	})
}

func canonicalText(v decimal.NullDecimal, suffix string) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.String() + " " + suffix
}

func weightParam(r *http.Request, prefs domain.Preferences) (units.WeightUnit, error) {
	if v := r.URL.Query().Get("unit"); v != "" {
		return units.ParseWeightUnit(v)
	}
	return prefs.WeightUnit, nil
}

func volumeParam(r *http.Request, prefs domain.Preferences) (units.VolumeUnit, error) {
	if v := r.URL.Query().Get("unit"); v != "" {
		return units.ParseVolumeUnit(v)
	}
	return prefs.VolumeUnit, nil
}

// precisionParam applies an optional ?precision= override.
func precisionParam(r *http.Request, set func(int)) error {
	v := r.URL.Query().Get("precision")
	if v == "" {
		return nil
	}
	d, err := strconv.Atoi(v)
	if err != nil || d < 0 || d > 10 {
		return fmt.Errorf("%w: precision must be an integer between 0 and 10", domain.ErrValidation)
	}
	set(d)
	return nil
}
