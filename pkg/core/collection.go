package core

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// load reads the persisted collection.
// Missing or undecodable data yields an empty collection; only storage failures are returned.
func (s *Store) load(ctx context.Context) ([]Note, error) {
	raw, ok, err := s.storage.GetItem(ctx, s.notesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Note{}, nil
	}
	return decodeCollection(raw), nil
}

// save overwrites the persisted collection in a single write.
func (s *Store) save(ctx context.Context, notes []Note) error {
	data, err := encodeCollection(notes)
	if err != nil {
		return &StorageError{Op: "encode", Key: s.notesKey, Err: err}
	}
	return s.storage.SetItem(ctx, s.notesKey, data)
}

// allocateID returns the next id and persists its successor.
// The counter is raised past any id already in notes so an id is never reissued,
// even when the counter value was lost or corrupted.
func (s *Store) allocateID(ctx context.Context, notes []Note) (int64, error) {
	raw, ok, err := s.storage.GetItem(ctx, s.counterKey)
	if err != nil {
		return 0, err
	}

	next := int64(1)
	if ok {
		if n, valid := parseCounter(raw); valid {
			next = n
		}
	}
	for _, n := range notes {
		if n.ID >= next {
			next = n.ID + 1
		}
	}

	if err := s.storage.SetItem(ctx, s.counterKey, strconv.FormatInt(next+1, 10)); err != nil {
		return 0, err
	}
	return next, nil
}

func decodeCollection(raw string) []Note {
	if strings.TrimSpace(raw) == "" {
		return []Note{}
	}
	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil || notes == nil {
		return []Note{}
	}
	return notes
}

func encodeCollection(notes []Note) (string, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseCounter accepts a positive decimal integer.
func parseCounter(raw string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
