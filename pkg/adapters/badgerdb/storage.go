// Package badgerdb implements core.Storage on an embedded Badger database.
package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"
	"github.com/dgraph-io/badger/v4"

	"github.com/aretw0/notekeep/pkg/core"
)

// Config holds the configuration for the Badger storage.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// Prefix namespaces every key, so the database can be shared with other data.
	Prefix   string
	ReadOnly bool
	Logger   *slog.Logger
}

// Storage wraps a Badger database instance.
type Storage struct {
	db     *badger.DB
	config Config
}

// Open opens (or creates) the database described by config.
func Open(config Config) (*Storage, error) {
	opts := badger.DefaultOptions(config.Path)
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil      // Badger's internal logging is noisy and unstructured
	opts.SyncWrites = true // a successful SetItem is durable
	opts.ReadOnly = config.ReadOnly && !config.InMemory

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if config.Logger != nil {
		config.Logger.Debug("badger database opened", "path", config.Path, "in_memory", config.InMemory)
	}
	return &Storage{db: db, config: config}, nil
}

// Close gracefully closes the database.
func (s *Storage) Close() error {
	if s.config.Logger != nil {
		s.config.Logger.Debug("closing badger database")
	}
	return s.db.Close()
}

// GetItem implements core.Storage.
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &core.StorageError{Op: "get", Key: key, Err: err}
	}
	return string(value), true, nil
}

// SetItem implements core.Storage.
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return &core.StorageError{Op: "set", Key: key, Err: core.ErrReadOnly}
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), []byte(value))
	})
	if err != nil {
		return &core.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// RemoveItem implements core.Storage.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return &core.StorageError{Op: "remove", Key: key, Err: core.ErrReadOnly}
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
	if err != nil {
		return &core.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

func (s *Storage) key(key string) []byte {
	return []byte(s.config.Prefix + key)
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	lsm, vlog := s.db.Size()
	return map[string]any{
		"path":       s.config.Path,
		"in_memory":  s.config.InMemory,
		"prefix":     s.config.Prefix,
		"lsm_bytes":  lsm,
		"vlog_bytes": vlog,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "badger"
}

var _ core.Storage = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
