package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.prefs.Get(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	var prefs domain.Preferences
	if err := decodeJSON(w, r, &prefs); err != nil {
		s.writeErr(w, r, err)
		return
	}
	if err := s.prefs.Set(r.Context(), user, prefs); err != nil {
		s.writeErr(w, r, err)
		return
	}
	stored, err := s.prefs.Get(r.Context(), user)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleResetPreferences(w http.ResponseWriter, r *http.Request) {
	if err := s.prefs.Reset(r.Context(), chi.URLParam(r, "user")); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
