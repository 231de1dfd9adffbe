// Package lifecycle exposes note store change events as an aretw0/lifecycle source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notekeep/pkg/core"
)

// noteEventSource relays storage events that concern the note store.
type noteEventSource struct {
	events <-chan core.Event
	keys   map[string]bool
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting the events of a Store.Watch channel.
// When keys are given (usually Store.Keys()), events on any other key are dropped,
// so files written next to the store's own do not show up.
// The source's channel closes when the input closes or the Start context is done.
func NewSource(events <-chan core.Event, keys ...string) lifecycle.Source {
	var owned map[string]bool
	if len(keys) > 0 {
		owned = make(map[string]bool, len(keys))
		for _, k := range keys {
			owned[k] = true
		}
	}
	return &noteEventSource{
		events: events,
		keys:   owned,
		out:    make(chan lifecycle.Event),
	}
}

func (s *noteEventSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *noteEventSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.keys != nil && !s.keys[e.Key] {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
