package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func entryAt(kind string, ts time.Time) Entry {
	return Entry{
		Kind:      kind,
		ActorID:   "user-1",
		SubjectID: "task-1",
		Timestamp: ts,
	}
}

func TestAppendAndSize(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, store.Append(entryAt("task_created", base)))
	require.NoError(t, store.Append(entryAt("application_submitted", base.Add(time.Minute))))
	require.NoError(t, store.Append(entryAt("task_completed", base.Add(2*time.Minute))))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestAppend_FillsDefaults(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Append(Entry{Kind: "user_registered"}))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestRecent_NewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, store.Append(entryAt("task_created", base)))
	require.NoError(t, store.Append(entryAt("application_submitted", base.Add(time.Minute))))
	require.NoError(t, store.Append(entryAt("task_completed", base.Add(2*time.Minute))))

	entries, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "task_completed", entries[0].Kind)
	assert.Equal(t, "application_submitted", entries[1].Kind)
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now()
	require.NoError(t, store.Append(entryAt("task_created", old)))
	require.NoError(t, store.Append(entryAt("application_submitted", old.Add(time.Minute))))
	require.NoError(t, store.Append(entryAt("task_completed", fresh)))

	removed, err := store.Cleanup(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "task_completed", entries[0].Kind)
}

func TestCleanup_NothingToRemove(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append(entryAt("task_created", time.Now())))

	removed, err := store.Cleanup(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)
}
