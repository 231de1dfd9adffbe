package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	StorageType string `json:"storage_type"`
	NotesKey    string `json:"notes_key"`
	CounterKey  string `json:"counter_key"`
	Locking     bool   `json:"locking"`
	Watchable   bool   `json:"watchable"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	storageType := "unknown"
	if comp, ok := s.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}
	_, locking := s.storage.(Locker)
	_, watchable := s.storage.(Watchable)

	return StoreState{
		StorageType: storageType,
		NotesKey:    s.notesKey,
		CounterKey:  s.counterKey,
		Locking:     locking,
		Watchable:   watchable,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "note-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
