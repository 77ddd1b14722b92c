package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndBatch(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Enqueue(Item{
			UserID:    "user-1",
			Entity:    EntityReport,
			Operation: OperationCreate,
			Data:      json.RawMessage(`{"title":"pump check"}`),
		}))
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	items, err := store.GetBatch(2)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Reading is non-destructive.
	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestPriorityOrdering(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{ID: "low", Entity: EntityReport, Operation: OperationUpdate, Priority: 5}))
	require.NoError(t, store.Enqueue(Item{ID: "high", Entity: EntityProfile, Operation: OperationUpdate, Priority: 1}))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "high", items[0].ID)
	assert.Equal(t, "low", items[1].ID)
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{ID: "one", Entity: EntityReport, Operation: OperationDelete}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Remove(items[0]))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size)
}

func TestRequeueBumpsTimestamp(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, store.Enqueue(Item{ID: "retry-me", Entity: EntityReport, Operation: OperationCreate, Timestamp: old}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	item.Retries++
	require.NoError(t, store.Remove(items[0]))
	require.NoError(t, store.Requeue(item))

	items, err = store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Retries)
	assert.True(t, items[0].Timestamp.After(old))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestCleanupDropsOldItems(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{ID: "stale", Entity: EntityReport, Operation: OperationCreate, Timestamp: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, store.Enqueue(Item{ID: "fresh", Entity: EntityReport, Operation: OperationCreate}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID)
}
