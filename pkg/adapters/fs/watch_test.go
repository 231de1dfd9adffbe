package fs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/pkg/adapters/fs"
	"github.com/aretw0/notekeep/pkg/core"
)

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "event channel closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestStorage_Watch(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watched := fs.NewStorage(fs.Config{Path: root})
	require.NoError(t, watched.Initialize(ctx))

	events, err := watched.Watch(ctx, "notes")
	require.NoError(t, err)

	// A second writer on the same directory, like another process.
	other := fs.NewStorage(fs.Config{Path: root})

	require.NoError(t, other.SetItem(ctx, "notes_next_id", "2")) // filtered by pattern
	require.NoError(t, other.SetItem(ctx, "notes", "[]"))
	e := nextEvent(t, events)
	assert.Equal(t, core.EventCreate, e.Type)
	assert.Equal(t, "notes", e.Key)

	require.NoError(t, other.SetItem(ctx, "notes", `[{"id":1}]`))
	e = nextEvent(t, events)
	assert.Equal(t, core.EventModify, e.Type)

	require.NoError(t, other.RemoveItem(ctx, "notes"))
	e = nextEvent(t, events)
	assert.Equal(t, core.EventDelete, e.Type)
	assert.Equal(t, "DELETE notes", e.String())

	cancel()
	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event channel not closed after cancel")
	}
}

func TestStorage_Watch_InvalidPattern(t *testing.T) {
	s := newStorage(t)
	_, err := s.Watch(context.Background(), "[")
	assert.Error(t, err)
}

func TestStore_Watch_Delegates(t *testing.T) {
	s := newStorage(t)
	store := core.NewStore(s)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx, "")
	require.NoError(t, err)

	_, err = store.CreateNote(ctx, core.CreateInput{Title: "watched"})
	require.NoError(t, err)

	keys := map[string]bool{}
	for len(keys) < 2 {
		keys[nextEvent(t, events).Key] = true
	}
	assert.True(t, keys["notes"])
	assert.True(t, keys["notes_next_id"])
}
