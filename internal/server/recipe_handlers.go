package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	list, err := s.recipes.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	views, err := s.recipes.Views(r.Context(), list, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	s.saveRecipe(w, r, "")
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	s.saveRecipe(w, r, chi.URLParam(r, "id"))
}

// saveRecipe creates a recipe when id is empty and replaces it otherwise.
func (s *Server) saveRecipe(w http.ResponseWriter, r *http.Request, id string) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	var in domain.RecipeInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeErr(w, r, err)
		return
	}

	var recipe *domain.Recipe
	status := http.StatusOK
	if id == "" {
		recipe, err = s.recipes.Create(r.Context(), in, prefs)
		status = http.StatusCreated
	} else {
		recipe, err = s.recipes.Update(r.Context(), id, in, prefs)
	}
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	view, err := s.recipes.View(r.Context(), *recipe, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, status, view)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferencesFor(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	recipe, err := s.recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	view, err := s.recipes.View(r.Context(), *recipe, prefs)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := s.recipes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
