package history_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/stepflow/pkg/stepflow/history"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) history.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Append_and_Load", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		data := []byte(`{"id": "ev-1", "type": "message"}`)
		err := store.Append("sess-1", "ev-1", data)
		require.NoError(t, err)

		entries, err := store.Load("sess-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "sess-1", entries[0].SessionID)
		assert.Equal(t, "ev-1", entries[0].EventID)
		assert.Equal(t, 1, entries[0].Sequence)
		assert.Equal(t, data, entries[0].Data)
		assert.False(t, entries[0].Timestamp.IsZero())
	})

	t.Run(name+"/Load_UnknownSession", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		entries, err := store.Load("sess-nonexistent")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run(name+"/Append_PreservesOrder", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		for i := 1; i <= 3; i++ {
			id := fmt.Sprintf("ev-%d", i)
			require.NoError(t, store.Append("sess-1", id, []byte(id)))
		}

		entries, err := store.Load("sess-1")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i, e := range entries {
			assert.Equal(t, i+1, e.Sequence)
			assert.Equal(t, fmt.Sprintf("ev-%d", i+1), e.EventID)
		}
	})

	t.Run(name+"/Append_DuplicateEventIDAllowed", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		// Duplicate suppression is upstream; the store records both.
		require.NoError(t, store.Append("sess-1", "ev-1", []byte("a")))
		require.NoError(t, store.Append("sess-1", "ev-1", []byte("b")))

		count, err := store.Count("sess-1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run(name+"/Count", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		count, err := store.Count("sess-1")
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		require.NoError(t, store.Append("sess-1", "ev-1", []byte("a")))
		require.NoError(t, store.Append("sess-2", "ev-2", []byte("b")))

		count, err = store.Count("sess-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run(name+"/SessionsIsolated", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Append("sess-1", "ev-1", []byte("a")))
		require.NoError(t, store.Append("sess-2", "ev-2", []byte("b")))

		entries, err := store.Load("sess-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "ev-1", entries[0].EventID)
	})

	t.Run(name+"/DeleteSession", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Append("sess-1", "ev-1", []byte("a")))
		require.NoError(t, store.Append("sess-2", "ev-2", []byte("b")))

		require.NoError(t, store.DeleteSession("sess-1"))

		count, err := store.Count("sess-1")
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		count, err = store.Count("sess-2")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run(name+"/DeleteSession_Unknown", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		assert.NoError(t, store.DeleteSession("sess-nonexistent"))
	})

	t.Run(name+"/ClosedStore", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		assert.ErrorIs(t, store.Append("s", "e", nil), history.ErrStoreClosed)
		_, err := store.Load("s")
		assert.ErrorIs(t, err, history.ErrStoreClosed)
		_, err = store.Count("s")
		assert.ErrorIs(t, err, history.ErrStoreClosed)
		assert.ErrorIs(t, store.DeleteSession("s"), history.ErrStoreClosed)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContractTest(t, "memory", func(t *testing.T) history.Store {
		return history.NewMemoryStore()
	})
}

func TestSQLiteStore_Contract(t *testing.T) {
	storeContractTest(t, "sqlite", func(t *testing.T) history.Store {
		store, err := history.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	})
}
