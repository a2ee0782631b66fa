// Package database provides the SQLite connection and schema for brewkeeper.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Config holds database configuration
type Config struct {
	Path string // file path, or a "file:" URI for in-memory databases
	Name string // friendly name for logging
}

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
	name string
	log  zerolog.Logger
}

// New opens the database, applies connection pragmas and verifies the connection
func New(cfg Config, log zerolog.Logger) (*DB, error) {
	if cfg.Name == "" {
		cfg.Name = "brewkeeper"
	}
	if !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path to absolute: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		cfg.Path = absPath
	}

	conn, err := sql.Open("sqlite", buildConnectionString(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}
	configureConnectionPool(conn, cfg.Path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	return &DB{
		conn: conn,
		path: cfg.Path,
		name: cfg.Name,
		log:  log.With().Str("database", cfg.Name).Logger(),
	}, nil
}

// OpenMemory opens a private in-memory database with the schema applied.
// Each call returns an independent database.
func OpenMemory(name string) (*DB, error) {
	db, err := New(Config{Path: fmt.Sprintf("file:%s?mode=memory", name), Name: name}, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// buildConnectionString adds the pragmas every connection needs
func buildConnectionString(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	connStr := path + sep + "_pragma=foreign_keys(1)"
	connStr += "&_pragma=busy_timeout(5000)"
	if !strings.Contains(path, "mode=memory") {
		connStr += "&_pragma=journal_mode(WAL)"
		connStr += "&_pragma=synchronous(NORMAL)"
	}
	return connStr
}

// configureConnectionPool sizes the pool. In-memory databases keep a single
// connection alive so the data is not discarded between queries.
func configureConnectionPool(conn *sql.DB, path string) {
	if strings.Contains(path, "mode=memory") {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
		return
	}
	conn.SetMaxOpenConns(8)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(30 * time.Minute)
}

// Conn returns the underlying connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the resolved database path
func (db *DB) Path() string {
	return db.path
}

// Close closes the connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Migrate creates any missing tables
func (db *DB) Migrate(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	db.log.Debug().Int("statements", len(schema)).Msg("schema applied")
	return nil
}
