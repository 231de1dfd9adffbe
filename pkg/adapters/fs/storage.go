// Package fs implements core.Storage on a local directory, one file per key.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notekeep/pkg/core"
)

// DefaultSystemDir is the directory, relative to the root path, holding the item files.
const DefaultSystemDir = ".notekeep"

// Storage implements core.Storage, core.Locker and core.Watchable on the filesystem.
type Storage struct {
	Path   string
	dir    string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	SystemDir    string // e.g. ".notekeep"
	MustExist    bool
	ReadOnly     bool
	EventBuffer  int
	Logger       *slog.Logger
	ErrorHandler func(error) // receives watcher failures
}

// NewStorage creates a filesystem-backed storage. It performs no I/O; call Initialize.
func NewStorage(config Config) *Storage {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 100
	}
	return &Storage{
		Path:   config.Path,
		dir:    filepath.Join(config.Path, config.SystemDir),
		config: config,
	}
}

// Dir returns the directory holding the item files.
func (s *Storage) Dir() string {
	return s.dir
}

// Initialize makes sure the item directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
	}

	if s.config.ReadOnly {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if s.config.Logger != nil {
		s.config.Logger.Debug("filesystem storage ready", "dir", s.dir)
	}
	return nil
}

// GetItem implements core.Storage.
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(s.itemPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &core.StorageError{Op: "get", Key: key, Err: err}
	}
	return string(data), true, nil
}

// SetItem implements core.Storage. The file is replaced atomically.
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return &core.StorageError{Op: "set", Key: key, Err: core.ErrReadOnly}
	}

	if err := writeFileAtomic(s.itemPath(key), []byte(value), 0644); err != nil {
		return &core.StorageError{Op: "set", Key: key, Err: err}
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("item written", "key", key, "bytes", len(value))
	}
	return nil
}

// RemoveItem implements core.Storage.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return &core.StorageError{Op: "remove", Key: key, Err: core.ErrReadOnly}
	}

	err := os.Remove(s.itemPath(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &core.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Keys lists the keys currently stored.
func (s *Storage) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyFromFile(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *Storage) itemPath(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

// keyFromFile maps an item file name back to its key, rejecting lock and temp files.
func keyFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, LockFileName) || strings.HasPrefix(name, TempFilePrefix) {
		return "", false
	}
	key, err := url.PathUnescape(name)
	if err != nil {
		return "", false
	}
	return key, true
}

var (
	_ core.Storage   = (*Storage)(nil)
	_ core.Locker    = (*Storage)(nil)
	_ core.Watchable = (*Storage)(nil)
)
