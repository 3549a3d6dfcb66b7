package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/merkleberry/types"
)

func TestLevelDBStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leveldb")

	store, err := NewLevelDBStore(path)
	require.NoError(t, err)

	t.Run("get missing key", func(t *testing.T) {
		_, err := store.Get("missing")
		require.ErrorIs(t, err, types.ErrKeyNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set("k1", "v1"))

		value, err := store.Get("k1")
		require.NoError(t, err)
		require.Equal(t, "v1", value)
	})

	t.Run("has", func(t *testing.T) {
		exists, err := store.Has("k1")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = store.Has("missing")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		require.NoError(t, store.Close())

		reopened, err := NewLevelDBStore(path)
		require.NoError(t, err)
		defer reopened.Close()

		value, err := reopened.Get("k1")
		require.NoError(t, err)
		require.Equal(t, "v1", value)
	})
}

func TestLevelDBStore_Closed(t *testing.T) {
	store, err := NewLevelDBStore(filepath.Join(t.TempDir(), "leveldb"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get("k")
	require.ErrorIs(t, err, types.ErrStoreClosed)
	require.ErrorIs(t, store.Set("k", "v"), types.ErrStoreClosed)

	// Double close is a no-op.
	require.NoError(t, store.Close())
}
