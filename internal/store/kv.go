package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Repository is the persistence interface the stores write through.
// Values are serialized as JSON documents under string keys.
type Repository interface {
	// Get deserializes the document stored under key into dest.
	// Returns an error wrapping sql.ErrNoRows when the key is absent.
	Get(ctx context.Context, key string, dest any) error

	// Set serializes value and writes it under key, replacing any
	// previous document.
	Set(ctx context.Context, key string, value any) error

	// Has reports whether a document exists under key.
	Has(ctx context.Context, key string) (bool, error)

	// Delete removes the document under key. Missing keys are a no-op.
	Delete(ctx context.Context, key string) error
}

// KV implements Repository using a local SQLite database.
type KV struct {
	db *sqlx.DB
}

var _ Repository = (*KV)(nil)

// NewKV opens (or creates) a SQLite database at dbPath, enables WAL mode,
// and runs any pending schema migrations.
func NewKV(dbPath string) (*KV, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &KV{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *KV) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *KV) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Get retrieves and deserializes a document by key.
func (s *KV) Get(ctx context.Context, key string, dest any) error {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM documents WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("getting document %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("decoding document %q: %w", key, err)
	}
	return nil
}

// Set serializes value and writes it under key.
func (s *KV) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding document %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing document %q: %w", key, err)
	}
	return nil
}

// Has reports whether a document exists under key.
func (s *KV) Has(ctx context.Context, key string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM documents WHERE key = ?", key)
	if err != nil {
		return false, fmt.Errorf("checking document %q: %w", key, err)
	}
	return count > 0, nil
}

// Delete removes the document under key.
func (s *KV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting document %q: %w", key, err)
	}
	return nil
}

// IsNotFound reports whether err indicates a missing document.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
