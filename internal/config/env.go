package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds process-level configuration read from the environment.
type Settings struct {
	DataDir   string // base directory for the database, session and preferences (always absolute)
	DBPath    string
	PrefsPath string
	Port      int
	LogLevel  string
	LogPretty bool
	APIToken  string // bearer token required by the HTTP API; empty disables auth
}

// getEnv retrieves an environment variable value, returning fallback when unset or empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// LoadEnv reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env values.
func LoadEnv(files ...string) (*Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	dataDir := getEnv("BREWKEEPER_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".brewkeeper")
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	port, err := strconv.Atoi(getEnv("BREWKEEPER_PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("BREWKEEPER_PORT must be a port number, got %q", os.Getenv("BREWKEEPER_PORT"))
	}

	pretty, err := strconv.ParseBool(getEnv("BREWKEEPER_LOG_PRETTY", "true"))
	if err != nil {
		return nil, fmt.Errorf("BREWKEEPER_LOG_PRETTY must be a boolean: %w", err)
	}

	return &Settings{
		DataDir:   absDataDir,
		DBPath:    getEnv("BREWKEEPER_DB", filepath.Join(absDataDir, "brewkeeper.db")),
		PrefsPath: getEnv("BREWKEEPER_PREFS", filepath.Join(absDataDir, "preferences.yaml")),
		Port:      port,
		LogLevel:  strings.ToLower(getEnv("BREWKEEPER_LOG_LEVEL", "info")),
		LogPretty: pretty,
		APIToken:  getEnv("BREWKEEPER_API_TOKEN", ""),
	}, nil
}

// EnsureDataDir creates the data directory if needed.
func (s *Settings) EnsureDataDir() error {
	if err := os.MkdirAll(s.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// SetDataDir moves the data directory. Database and preferences paths that
// were derived from the previous data directory move with it.
func (s *Settings) SetDataDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if s.DBPath == filepath.Join(s.DataDir, "brewkeeper.db") {
		s.DBPath = filepath.Join(abs, "brewkeeper.db")
	}
	if s.PrefsPath == filepath.Join(s.DataDir, "preferences.yaml") {
		s.PrefsPath = filepath.Join(abs, "preferences.yaml")
	}
	s.DataDir = abs
	return nil
}
