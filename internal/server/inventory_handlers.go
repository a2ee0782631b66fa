package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/internal/inventory"
)

// AdjustRequest changes an item's stock by Delta, expressed in Unit.
type AdjustRequest struct {
	Delta string `json:"delta"`
	Unit  string `json:"unit,omitempty"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	filter := domain.ItemFilter{Query: r.URL.Query().Get("q")}
	if k := r.URL.Query().Get("kind"); k != "" {
		if filter.Kind, err = domain.ParseKind(k); err != nil {
			s.writeErr(w, r, err)
			return
		}
	}
	items, err := s.inventory.List(r.Context(), filter)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, inventory.Views(items, prefs))
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var in domain.ItemInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeErr(w, r, err)
		return
	}
	item, err := s.inventory.Create(r.Context(), in, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, inventory.View(*item, prefs))
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	item, err := s.inventory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, inventory.View(*item, prefs))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var in domain.ItemInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeErr(w, r, err)
		return
	}
	item, err := s.inventory.Update(r.Context(), chi.URLParam(r, "id"), in, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, inventory.View(*item, prefs))
}

func (s *Server) handleAdjustItem(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var req AdjustRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeErr(w, r, err)
		return
	}
	item, err := s.inventory.Adjust(r.Context(), chi.URLParam(r, "id"), req.Delta, req.Unit, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, inventory.View(*item, prefs))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.inventory.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
