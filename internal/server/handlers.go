package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/internal/inventory"
	"github.com/brewkeeper/brewkeeper/pkg/units"
)

const maxBodyBytes = 1 << 20

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "brewkeeper",
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeErr maps domain errors to status codes. Unexpected errors are logged
// and hidden from the client.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		s.writeError(w, status, "internal error")
		return
	}
	s.writeError(w, status, err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, units.ErrInvalidUnit),
		errors.Is(err, units.ErrInvalidQuantity),
		errors.Is(err, units.ErrNonPositiveQuantity):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON request body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
	}
	return nil
}

// preferencesFor resolves the display preferences of a request: the stored
// preferences of the user named in UserHeader (or the anonymous defaults),
// overridden by weight_unit, volume_unit and color_scale query parameters.
func (s *Server) preferencesFor(r *http.Request) (domain.Preferences, error) {
	prefs := s.defaults().WithDefaults()
	if user := r.Header.Get(UserHeader); user != "" && s.prefs != nil {
		var err error
		if prefs, err = s.prefs.Get(r.Context(), user); err != nil {
			return prefs, err
		}
	}

	q := r.URL.Query()
	if v := q.Get("weight_unit"); v != "" {
		u, err := units.ParseWeightUnit(v)
		if err != nil {
			return prefs, err
		}
		prefs.WeightUnit = u
	}
	if v := q.Get("volume_unit"); v != "" {
		u, err := units.ParseVolumeUnit(v)
		if err != nil {
			return prefs, err
		}
		prefs.VolumeUnit = u
	}
	if v := q.Get("color_scale"); v != "" {
		c, err := units.ParseColorScale(v)
		if err != nil {
			return prefs, err
		}
		prefs.ColorScale = c
	}
	return prefs, nil
}
