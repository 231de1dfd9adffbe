package core

import "context"

// Storage is the key-value primitive the Note Store persists into.
// It mirrors a browser's local storage: string keys, string values, whole-value writes.
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem overwrites the value stored under key in a single write.
	// A failed write must leave the previous value intact.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Locker is implemented by storages shared between processes.
// The Store holds the lock for the duration of every load-modify-save.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// Watchable is implemented by storages that can report changes made by other writers.
type Watchable interface {
	// Watch emits an Event for every change to a key matching pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
