// Package preferences persists per-user display settings.
package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/brewkeeper/brewkeeper/internal/domain"
)

// Store keeps one YAML preferences document per user. Users without a
// stored document get the fallback preferences.
type Store struct {
	db       *sql.DB
	log      zerolog.Logger
	fallback func() domain.Preferences
	now      func() time.Time
}

// NewStore creates a store. fallback supplies the preferences of users who
// have never saved any, typically the live preferences file.
func NewStore(db *sql.DB, fallback func() domain.Preferences, log zerolog.Logger) *Store {
	if fallback == nil {
		fallback = domain.DefaultPreferences
	}
	return &Store{
		db:       db,
		log:      log.With().Str("repository", "preferences").Logger(),
		fallback: fallback,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the preferences of username with defaults filled in.
func (s *Store) Get(ctx context.Context, username string) (domain.Preferences, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM preferences WHERE username = ?`, username).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return s.fallback().WithDefaults(), nil
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to load preferences for %s: %w", username, err)
	}

	var prefs domain.Preferences
	if err := yaml.Unmarshal([]byte(doc), &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to decode preferences for %s: %w", username, err)
	}
	return prefs.WithDefaults(), nil
}

// Set validates and stores the preferences of username.
func (s *Store) Set(ctx context.Context, username string, prefs domain.Preferences) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	prefs = prefs.WithDefaults()
	if err := prefs.Validate(); err != nil {
		return err
	}
	doc, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO preferences (username, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		username, string(doc), s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save preferences for %s: %w", username, err)
	}
	s.log.Debug().Str("user", username).Msg("preferences saved")
	return nil
}

// Reset removes the stored preferences of username so the fallback applies again.
func (s *Store) Reset(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE username = ?`, username); err != nil {
		return fmt.Errorf("failed to reset preferences for %s: %w", username, err)
	}
	return nil
}
