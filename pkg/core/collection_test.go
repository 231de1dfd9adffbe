package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStorage map[string]string

func (m mapStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapStorage) SetItem(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m mapStorage) RemoveItem(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

func TestParseCounter(t *testing.T) {
	tests := []struct {
		raw   string
		want  int64
		valid bool
	}{
		{"1", 1, true},
		{" 17 ", 17, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"12abc", 0, false},
	}
	for _, tt := range tests {
		got, valid := parseCounter(tt.raw)
		assert.Equal(t, tt.valid, valid, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestPersistedLayout(t *testing.T) {
	storage := mapStorage{}
	store := NewStore(storage, WithClock(func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 678_900_000, time.UTC)
	}))

	_, err := store.CreateNote(context.Background(), CreateInput{Title: "T", Body: "B", Tags: []string{"x"}})
	require.NoError(t, err)

	assert.Equal(t,
		`[{"id":1,"title":"T","body":"B","tags":["x"],"archived":false,"updated_at":"2024-01-02T03:04:05.678Z","version":1}]`,
		storage[DefaultNotesKey])
	assert.Equal(t, "2", storage[DefaultCounterKey])
}

func TestPersistedLayout_KeepsMillisecondDigits(t *testing.T) {
	tests := map[string]struct {
		at   time.Time
		want string
	}{
		"trailing zeros": {time.Date(2024, 1, 2, 3, 4, 5, 100_000_000, time.UTC), "2024-01-02T03:04:05.100Z"},
		"whole second":   {time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05.000Z"},
		"non-UTC clock":  {time.Date(2024, 1, 2, 5, 4, 5, 20_000_000, time.FixedZone("EET", 2*3600)), "2024-01-02T03:04:05.020Z"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			storage := mapStorage{}
			store := NewStore(storage, WithClock(func() time.Time { return tt.at }))

			_, err := store.CreateNote(context.Background(), CreateInput{Title: "T"})
			require.NoError(t, err)
			assert.Contains(t, storage[DefaultNotesKey], `"updated_at":"`+tt.want+`"`)

			reloaded, err := store.GetNote(context.Background(), 1)
			require.NoError(t, err)
			assert.True(t, tt.at.Equal(reloaded.UpdatedAt))
		})
	}
}

func TestDecodeCollection_ReadsForeignTimestamps(t *testing.T) {
	notes := decodeCollection(`[{"id":3,"title":"x","body":"","tags":[],"archived":true,"updated_at":"2023-11-05T08:00:00.000Z","version":4}]`)
	require.Len(t, notes, 1)
	assert.Equal(t, int64(3), notes[0].ID)
	assert.True(t, notes[0].Archived)
	assert.Equal(t, int64(4), notes[0].Version)
	assert.Equal(t, 2023, notes[0].UpdatedAt.Year())
}

func TestWithKeys(t *testing.T) {
	storage := mapStorage{}
	store := NewStore(storage, WithKeys("work:notes", "work:next"))

	_, err := store.CreateNote(context.Background(), CreateInput{Title: "T"})
	require.NoError(t, err)

	assert.Contains(t, storage, "work:notes")
	assert.Equal(t, "2", storage["work:next"])
	assert.NotContains(t, storage, DefaultNotesKey)
}
