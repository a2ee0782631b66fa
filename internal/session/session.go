// Package session tracks which user is logged in to the command line client.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileName is the session file created inside the data directory.
const FileName = "session.yaml"

// ErrNoSession is returned when nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Session identifies the logged-in user. Its username keys the per-user
// preferences.
type Session struct {
	Username  string    `yaml:"username"`
	Token     string    `yaml:"token"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Store persists the session as a YAML file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a store writing FileName under dir.
func NewStore(dir string) *Store {
	return &Store{
		path: filepath.Join(dir, FileName),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Login starts a session for username, replacing any existing one.
func (s *Store) Login(username string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	sess := &Session{
		Username:  username,
		Token:     uuid.NewString(),
		CreatedAt: s.now().Truncate(time.Second),
	}
	data, err := yaml.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write session: %w", err)
	}
	return sess, nil
}

// Load returns the current session or ErrNoSession.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", s.path, err)
	}
	if sess.Username == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Logout ends the current session. Logging out twice returns ErrNoSession.
func (s *Store) Logout() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Username returns the logged-in user, or fallback when nobody is logged in.
func (s *Store) Username(fallback string) string {
	sess, err := s.Load()
	if err != nil {
		return fallback
	}
	return sess.Username
}
