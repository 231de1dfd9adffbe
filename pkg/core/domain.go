// Package core holds the note domain and the Note Store.
package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the persisted form of UpdatedAt: UTC with exactly three
// fractional digits, the same text a browser's toISOString produces.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Note is the central entity of the domain.
// Its JSON shape is the persisted layout shared by every storage adapter.
type Note struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Archived  bool      `json:"archived" yaml:"archived"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	Version   int64     `json:"version" yaml:"version"`
}

// MarshalJSON keeps the millisecond digits of UpdatedAt fixed.
// Decoding needs no counterpart: RFC 3339 parsing accepts any fraction.
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        int64    `json:"id"`
		Title     string   `json:"title"`
		Body      string   `json:"body"`
		Tags      []string `json:"tags"`
		Archived  bool     `json:"archived"`
		UpdatedAt string   `json:"updated_at"`
		Version   int64    `json:"version"`
	}{n.ID, n.Title, n.Body, n.Tags, n.Archived, n.UpdatedAt.UTC().Format(TimestampLayout), n.Version})
}

// CreateInput carries the user-authored fields of a new note.
type CreateInput struct {
	Title string
	Body  string
	Tags  []string
}

// UpdateInput replaces Title, Body and Tags wholesale.
// Archived is optional: nil keeps the stored value.
// IfVersion, when non-zero, must match the stored version for the update to apply.
type UpdateInput struct {
	Title     string
	Body      string
	Tags      []string
	Archived  *bool
	IfVersion int64
}

// EventType represents the type of change observed in storage.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a storage key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
