package badgerdb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/pkg/adapters/badgerdb"
	"github.com/aretw0/notekeep/pkg/adapters/storagetest"
	"github.com/aretw0/notekeep/pkg/core"
)

func TestStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) core.Storage {
		s, err := badgerdb.Open(badgerdb.Config{InMemory: true})
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	ctx := context.Background()

	s, err := badgerdb.Open(badgerdb.Config{Path: path})
	require.NoError(t, err)
	n, err := core.NewStore(s).CreateNote(ctx, core.CreateInput{Title: "durable", Tags: []string{"db"}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = badgerdb.Open(badgerdb.Config{Path: path})
	require.NoError(t, err)
	defer s.Close()

	got, err := core.NewStore(s).GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)
}

func TestStorage_Prefix(t *testing.T) {
	ctx := context.Background()
	s, err := badgerdb.Open(badgerdb.Config{InMemory: true, Prefix: "a:"})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetItem(ctx, "notes", "[]"))

	v, ok, err := s.GetItem(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
	assert.Equal(t, "badger", s.ComponentType())
}
