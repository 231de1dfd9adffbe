package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/pkg/adapters/memory"
	"github.com/aretw0/notekeep/pkg/adapters/storagetest"
	"github.com/aretw0/notekeep/pkg/core"
)

func TestStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) core.Storage {
		return memory.New()
	})
}

func TestStorage_Quota(t *testing.T) {
	ctx := context.Background()
	s := memory.New(memory.WithQuota(10))

	require.NoError(t, s.SetItem(ctx, "k", "12345"))

	err := s.SetItem(ctx, "other", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, memory.ErrQuotaExceeded))
	assert.True(t, errors.Is(err, core.ErrStorage))

	// The failed write left the previous state untouched.
	_, ok, _ := s.GetItem(ctx, "other")
	assert.False(t, ok)

	// Replacing an existing key only counts its new size.
	require.NoError(t, s.SetItem(ctx, "k", "123456789"))
	assert.Equal(t, 1, s.Len())
}
