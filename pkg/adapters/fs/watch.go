package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notekeep/pkg/core"
)

// Watch implements core.Watchable. It reports changes to keys matching pattern
// (doublestar syntax, "" meaning every key) made by any writer, this process included.
// The returned channel is closed once ctx is done.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	known := make(map[string]bool)
	keys, err := s.Keys()
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	for _, k := range keys {
		known[k] = true
	}

	events := make(chan core.Event, s.config.EventBuffer)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatcherActive(false)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return nil

			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				e, send := s.translate(ev, pattern, known)
				if !send {
					continue
				}
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				s.handleWatchError(err)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.handleWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

// translate maps a filesystem event on an item file to a key event.
// Atomic writes land as a create of the final name, so known tells a create from a modify.
func (s *Storage) translate(ev fsnotify.Event, pattern string, known map[string]bool) (core.Event, bool) {
	key, ok := keyFromFile(filepath.Base(ev.Name))
	if !ok {
		return core.Event{}, false
	}
	if match, err := doublestar.Match(pattern, key); err != nil || !match {
		return core.Event{}, false
	}

	var typ core.EventType
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		typ = core.EventCreate
		if known[key] {
			typ = core.EventModify
		}
		known[key] = true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if !known[key] {
			return core.Event{}, false
		}
		typ = core.EventDelete
		delete(known, key)
	default:
		return core.Event{}, false
	}

	now := time.Now()
	s.mu.Lock()
	s.lastEvent = &now
	s.mu.Unlock()

	if s.config.Logger != nil {
		s.config.Logger.Debug("storage event", "type", typ, "key", key)
	}
	return core.Event{Type: typ, Key: key, Timestamp: now.Unix()}, true
}

func (s *Storage) handleWatchError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
		return
	}
	if s.config.Logger != nil {
		s.config.Logger.Error("watcher error", "error", err)
	}
}

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
