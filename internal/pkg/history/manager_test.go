package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxEntries int) (*FileManager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	return NewFileManager(path, maxEntries), path
}

func TestSave_GeneratesIDAndTimestamp(t *testing.T) {
	mgr, _ := newTestManager(t, 10)

	entry := &Entry{
		Message:   "feat: add login",
		Provider:  "deepseek",
		Model:     "deepseek-chat",
		Committed: true,
	}
	require.NoError(t, mgr.Save(entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestSave_FilePermissions(t *testing.T) {
	mgr, path := newTestManager(t, 10)

	require.NoError(t, mgr.Save(&Entry{Message: "feat: x"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestList_NewestFirst(t *testing.T) {
	mgr, _ := newTestManager(t, 10)

	require.NoError(t, mgr.Save(&Entry{Message: "feat: first", Timestamp: time.Now().Add(-2 * time.Hour)}))
	require.NoError(t, mgr.Save(&Entry{Message: "fix: second", Timestamp: time.Now().Add(-time.Hour)}))
	require.NoError(t, mgr.Save(&Entry{Message: "docs: third", Timestamp: time.Now()}))

	entries, err := mgr.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "docs: third", entries[0].Message)
	assert.Equal(t, "feat: first", entries[2].Message)
}

func TestList_Limit(t *testing.T) {
	mgr, _ := newTestManager(t, 10)

	for _, msg := range []string{"feat: a", "fix: b", "docs: c", "test: d"} {
		require.NoError(t, mgr.Save(&Entry{Message: msg}))
	}

	entries, err := mgr.List(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "test: d", entries[0].Message)
	assert.Equal(t, "docs: c", entries[1].Message)
}

func TestList_EmptyWhenNoFile(t *testing.T) {
	mgr, _ := newTestManager(t, 10)

	entries, err := mgr.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_Rotation(t *testing.T) {
	mgr, _ := newTestManager(t, 3)

	for _, msg := range []string{"feat: a", "fix: b", "docs: c", "test: d", "chore: e"} {
		require.NoError(t, mgr.Save(&Entry{Message: msg}))
	}

	entries, err := mgr.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "chore: e", entries[0].Message)
	assert.Equal(t, "docs: c", entries[2].Message, "oldest surviving entry after rotation")
}

func TestClear(t *testing.T) {
	mgr, _ := newTestManager(t, 10)

	require.NoError(t, mgr.Save(&Entry{Message: "feat: x"}))
	require.NoError(t, mgr.Clear())

	entries, err := mgr.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_CorruptFileFails(t *testing.T) {
	mgr, path := newTestManager(t, 10)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	err := mgr.Save(&Entry{Message: "feat: x"})
	assert.Error(t, err)
}
