package core

import (
	"context"
	"sync"
	"time"
)

// Default storage keys. They match the layout written by earlier releases.
const (
	DefaultNotesKey   = "notes"
	DefaultCounterKey = "notes_next_id"
)

// Store is the Note Store: CRUD access to the note collection on top of a Storage.
//
// Every operation is a load-modify-save of the whole collection. Operations are
// serialized within the process; when the storage also implements Locker the
// writes are serialized across processes sharing it.
type Store struct {
	mu         sync.Mutex
	storage    Storage
	notesKey   string
	counterKey string
	now        func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKeys overrides the storage keys holding the collection and the id counter.
func WithKeys(notesKey, counterKey string) StoreOption {
	return func(s *Store) {
		if notesKey != "" {
			s.notesKey = notesKey
		}
		if counterKey != "" {
			s.counterKey = counterKey
		}
	}
}

// NewStore creates a Store persisting into storage.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage:    storage,
		notesKey:   DefaultNotesKey,
		counterKey: DefaultCounterKey,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Storage returns the underlying storage.
func (s *Store) Storage() Storage {
	return s.storage
}

// Keys returns the storage keys the store owns: the collection and the id counter.
func (s *Store) Keys() []string {
	return []string{s.notesKey, s.counterKey}
}

// CreateNote stores a new note and returns it with its assigned id.
// Input fields are stored as given, without validation.
func (s *Store) CreateNote(ctx context.Context, in CreateInput) (Note, error) {
	release, err := s.acquire(ctx, true)
	if err != nil {
		return Note{}, err
	}
	defer release()

	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}

	id, err := s.allocateID(ctx, notes)
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:        id,
		Title:     in.Title,
		Body:      in.Body,
		Tags:      copyTags(in.Tags),
		Archived:  false,
		UpdatedAt: s.timestamp(),
		Version:   1,
	}

	notes = append(notes, note)
	if err := s.save(ctx, notes); err != nil {
		return Note{}, err
	}
	return note, nil
}

// GetNote returns the note with the given id, or a *NotFoundError.
func (s *Store) GetNote(ctx context.Context, id int64) (Note, error) {
	release, err := s.acquire(ctx, false)
	if err != nil {
		return Note{}, err
	}
	defer release()

	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}

	i := indexOf(notes, id)
	if i == -1 {
		return Note{}, &NotFoundError{ID: id}
	}
	return notes[i], nil
}

// UpdateNote replaces the note's title, body and tags, sets archived when given,
// and bumps its version. A missing note yields *NotFoundError; nothing is created.
func (s *Store) UpdateNote(ctx context.Context, id int64, in UpdateInput) (Note, error) {
	release, err := s.acquire(ctx, true)
	if err != nil {
		return Note{}, err
	}
	defer release()

	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}

	i := indexOf(notes, id)
	if i == -1 {
		return Note{}, &NotFoundError{ID: id}
	}

	existing := notes[i]
	if in.IfVersion != 0 && in.IfVersion != existing.Version {
		return Note{}, &VersionConflictError{ID: id, Expected: in.IfVersion, Actual: existing.Version}
	}

	updated := existing
	updated.Title = in.Title
	updated.Body = in.Body
	updated.Tags = copyTags(in.Tags)
	if in.Archived != nil {
		updated.Archived = *in.Archived
	}
	updated.UpdatedAt = s.timestamp()
	updated.Version = existing.Version + 1

	notes[i] = updated
	if err := s.save(ctx, notes); err != nil {
		return Note{}, err
	}
	return updated, nil
}

// DeleteNote removes the note with the given id.
// Deleting an id that does not exist is a no-op, not an error.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	release, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer release()

	notes, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	return s.save(ctx, kept)
}

// ListNotes returns every note in stored order.
func (s *Store) ListNotes(ctx context.Context) ([]Note, error) {
	release, err := s.acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.load(ctx)
}

// Watch observes changes made to the storage if supported.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.storage.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx, pattern)
}

// acquire serializes the operation. Writers also take the storage lock when one exists.
func (s *Store) acquire(ctx context.Context, write bool) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !write {
		return s.mu.Unlock, nil
	}

	l, ok := s.storage.(Locker)
	if !ok {
		return s.mu.Unlock, nil
	}

	unlock, err := l.Lock(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return func() {
		unlock()
		s.mu.Unlock()
	}, nil
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func indexOf(notes []Note, id int64) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// copyTags detaches the stored slice from the caller's and never returns nil.
func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
