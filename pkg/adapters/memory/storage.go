// Package memory provides an in-process core.Storage.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/notekeep/pkg/core"
)

// ErrQuotaExceeded is returned (wrapped in *core.StorageError) when a write would exceed the quota.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Storage keeps items in a map. It is safe for concurrent use.
type Storage struct {
	mu    sync.RWMutex
	items map[string]string
	quota int
}

// Option configures a Storage.
type Option func(*Storage)

// WithQuota limits the total size, in bytes, of all keys and values.
// Zero means unlimited.
func WithQuota(bytes int) Option {
	return func(s *Storage) {
		s.quota = bytes
	}
}

// New creates an empty Storage.
func New(opts ...Option) *Storage {
	s := &Storage{items: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetItem implements core.Storage.
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem implements core.Storage.
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		size := len(key) + len(value)
		for k, v := range s.items {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > s.quota {
			return &core.StorageError{Op: "set", Key: key, Err: ErrQuotaExceeded}
		}
	}

	s.items[key] = value
	return nil
}

// RemoveItem implements core.Storage.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	used := 0
	for k, v := range s.items {
		used += len(k) + len(v)
	}
	return map[string]int{"keys": len(s.items), "bytes": used, "quota": s.quota}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var _ core.Storage = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
