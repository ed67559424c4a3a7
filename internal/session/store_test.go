package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestStoreSetGetClear(t *testing.T) {
	path := snapshotPath(t)
	store := NewStore(path)

	require.NoError(t, store.Set("tok-1"))
	assert.Equal(t, "tok-1", store.Get())

	// Snapshot is persisted alongside the in-memory value
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tok-1")

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Get())
}

func TestGetFallsBackToSnapshotBeforeHydration(t *testing.T) {
	path := snapshotPath(t)
	require.NoError(t, NewStore(path).Set("persisted-token"))

	// Fresh store, never hydrated: first Get must not be unauthenticated
	fresh := NewStore(path)
	assert.Equal(t, "persisted-token", fresh.Get())

	require.NoError(t, fresh.Hydrate())
	assert.Equal(t, "persisted-token", fresh.Get())
}

func TestHydrateMissingSnapshot(t *testing.T) {
	store := NewStore(snapshotPath(t))

	require.NoError(t, store.Hydrate())
	assert.Empty(t, store.Get())
}

func TestHydrateCorruptSnapshot(t *testing.T) {
	path := snapshotPath(t)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	store := NewStore(path)
	assert.Error(t, store.Hydrate())
	assert.Empty(t, store.Get())
}

func TestSnapshotLastWriteWins(t *testing.T) {
	path := snapshotPath(t)

	first := NewStore(path)
	second := NewStore(path)

	require.NoError(t, first.Set("one"))
	require.NoError(t, second.Set("two"))

	// Each hydrated store keeps its own copy; the snapshot carries the
	// last write
	assert.Equal(t, "one", first.Get())
	assert.Equal(t, "two", second.Get())
	assert.Equal(t, "two", NewStore(path).Get())
}
