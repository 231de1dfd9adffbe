// Package sqlite implements core.Storage as a key-value table in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/notekeep/pkg/core"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Storage provides SQLite-backed persistence.
type Storage struct {
	db       *sql.DB
	path     string
	readOnly bool
	logger   *slog.Logger
}

// Open creates or opens the database at path and runs the schema.
// Use ":memory:" for a private in-memory database.
// A read-only database must already exist: it is opened with mode=ro and
// neither the pragmas nor the schema are applied.
func Open(path string, readOnly bool, logger *slog.Logger) (*Storage, error) {
	dsn := path
	if readOnly {
		dsn = "file:" + path + "?mode=ro"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if readOnly {
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("open sqlite read-only: %w", err)
		}
	} else {
		if err := initSchema(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	if logger != nil {
		logger.Debug("sqlite database opened", "path", path)
	}
	return &Storage{db: db, path: path, readOnly: readOnly, logger: logger}, nil
}

func initSchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// GetItem implements core.Storage.
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &core.StorageError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// SetItem implements core.Storage.
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if s.readOnly {
		return &core.StorageError{Op: "set", Key: key, Err: core.ErrReadOnly}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return &core.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// RemoveItem implements core.Storage.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if s.readOnly {
		return &core.StorageError{Op: "remove", Key: key, Err: core.ErrReadOnly}
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &core.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	var keys int
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&keys)
	return map[string]any{"path": s.path, "keys": keys, "read_only": s.readOnly}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

var _ core.Storage = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
