// Package server exposes conversions, inventory, recipes and preferences over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/brewkeeper/brewkeeper/internal/domain"
	"github.com/brewkeeper/brewkeeper/internal/inventory"
	"github.com/brewkeeper/brewkeeper/internal/preferences"
	"github.com/brewkeeper/brewkeeper/internal/recipes"
)

// UserHeader names the user whose stored preferences apply to a request.
const UserHeader = "X-Brewkeeper-User"

// Config holds server configuration
type Config struct {
	Port        int
	Log         zerolog.Logger
	Inventory   *inventory.Service
	Recipes     *recipes.Service
	Preferences *preferences.Store
	// Defaults supplies the preferences for anonymous requests, usually the
	// live preferences file.
	Defaults func() domain.Preferences
	APIToken string
	DevMode  bool
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	port      int
	inventory *inventory.Service
	recipes   *recipes.Service
	prefs     *preferences.Store
	defaults  func() domain.Preferences
	token     string
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	defaults := cfg.Defaults
	if defaults == nil {
		defaults = domain.DefaultPreferences
	}
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		port:      cfg.Port,
		inventory: cfg.Inventory,
		recipes:   cfg.Recipes,
		prefs:     cfg.Preferences,
		defaults:  defaults,
		token:     cfg.APIToken,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", UserHeader},
		MaxAge:         300,
	}))
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/convert", func(r chi.Router) {
			r.Get("/weight", s.handleConvertWeight)
			r.Get("/volume", s.handleConvertVolume)
			r.Get("/srm", s.handleConvertSRM)
			r.Get("/liters", s.handleConvertLiters)
			r.Get("/grams", s.handleConvertGrams)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", s.handleListItems)
			r.Post("/", s.handleCreateItem)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetItem)
				r.Put("/", s.handleUpdateItem)
				r.Delete("/", s.handleDeleteItem)
				r.Post("/adjust", s.handleAdjustItem)
			})
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", s.handleListRecipes)
			r.Post("/", s.handleCreateRecipe)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetRecipe)
				r.Put("/", s.handleUpdateRecipe)
				r.Delete("/", s.handleDeleteRecipe)
			})
		})

		r.Route("/preferences/{user}", func(r chi.Router) {
			r.Get("/", s.handleGetPreferences)
			r.Put("/", s.handleSetPreferences)
			r.Delete("/", s.handleResetPreferences)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// authMiddleware requires "Authorization: Bearer <token>" when a token is configured.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="brewkeeper"`)
			s.writeError(w, http.StatusUnauthorized, "missing or invalid API token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
