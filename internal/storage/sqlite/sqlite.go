// Package sqlite provides a SQLite-backed implementation of storage.Engine.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/skf-fest/refresko/internal/storage"
)

// Ensure Engine implements storage.Engine
var _ storage.Engine = (*Engine)(nil)

// Engine implements storage.Engine on a single kv table.
type Engine struct {
	db *sql.DB

	// maxValueBytes caps individual values, 0 means unlimited. Keeps
	// large screenshot payloads from bloating the store.
	maxValueBytes int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxValueBytes caps the size of a single stored value. Writes over the
// cap fail with storage.ErrCapacityExceeded.
func WithMaxValueBytes(n int) Option {
	return func(e *Engine) { e.maxValueBytes = n }
}

// New creates an Engine with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*Engine, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The store is shared between processes; wait out concurrent writers.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	engine := &Engine{db: db}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// Close closes the database connection.
func (e *Engine) Close() error {
	return e.db.Close()
}

// Get returns the value stored under key.
func (e *Engine) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := e.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (e *Engine) Set(key string, value []byte) error {
	if e.maxValueBytes > 0 && len(value) > e.maxValueBytes {
		return storage.ErrCapacityExceeded
	}
	_, err := e.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Delete removes key if present.
func (e *Engine) Delete(key string) error {
	if _, err := e.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (e *Engine) Keys() ([]string, error) {
	rows, err := e.db.Query("SELECT key FROM kv")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	return keys, nil
}

// Clear removes every key.
func (e *Engine) Clear() error {
	if _, err := e.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}
