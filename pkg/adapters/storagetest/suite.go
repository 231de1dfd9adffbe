// Package storagetest holds the behaviour every core.Storage adapter must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/pkg/core"
)

// Run exercises storage returned by newStorage, which must be empty.
func Run(t *testing.T, newStorage func(t *testing.T) core.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("Absent Key", func(t *testing.T) {
		s := newStorage(t)
		v, ok, err := s.GetItem(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SetItem(ctx, "notes", `[{"id":1}]`))

		v, ok, err := s.GetItem(ctx, "notes")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1}]`, v)
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SetItem(ctx, "notes_next_id", "1"))
		require.NoError(t, s.SetItem(ctx, "notes_next_id", "2"))

		v, _, err := s.GetItem(ctx, "notes_next_id")
		require.NoError(t, err)
		assert.Equal(t, "2", v)
	})

	t.Run("Empty Value Is Present", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SetItem(ctx, "blank", ""))

		v, ok, err := s.GetItem(ctx, "blank")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("Remove", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.SetItem(ctx, "notes", "[]"))
		require.NoError(t, s.RemoveItem(ctx, "notes"))

		_, ok, err := s.GetItem(ctx, "notes")
		require.NoError(t, err)
		assert.False(t, ok)

		// Removing again is a no-op.
		require.NoError(t, s.RemoveItem(ctx, "notes"))
	})

	t.Run("Backs A Note Store", func(t *testing.T) {
		store := core.NewStore(newStorage(t))

		a, err := store.CreateNote(ctx, core.CreateInput{Title: "A", Body: "a", Tags: []string{"t1", "t2"}})
		require.NoError(t, err)
		b, err := store.CreateNote(ctx, core.CreateInput{Title: "B"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), a.ID)
		assert.Equal(t, int64(2), b.ID)

		archived := true
		updated, err := store.UpdateNote(ctx, a.ID, core.UpdateInput{Title: "A2", Body: "a2", Tags: []string{"t1"}, Archived: &archived})
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Version)

		got, err := store.GetNote(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)

		require.NoError(t, store.DeleteNote(ctx, b.ID))
		notes, err := store.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, a.ID, notes[0].ID)
	})
}
