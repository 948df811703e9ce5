package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/core/domain"
)

func TestNoteStore_ReadWrite(t *testing.T) {
	store := NewNoteStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "note.md")

	t.Run("write creates parent directories", func(t *testing.T) {
		require.NoError(t, store.Write(path, "# Note\n"))

		content, err := store.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "# Note\n", content)
	})

	t.Run("missing file maps to ErrNotFound", func(t *testing.T) {
		_, err := store.Read(filepath.Join(dir, "nope.md"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("notes are not world-readable", func(t *testing.T) {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestNoteStore_List(t *testing.T) {
	store := NewNoteStore()
	dir := t.TempDir()

	require.NoError(t, store.Write(filepath.Join(dir, "Zebra.md"), ""))
	require.NoError(t, store.Write(filepath.Join(dir, "apple.md"), ""))
	require.NoError(t, store.Write(filepath.Join(dir, "archive", "old.md"), ""))
	require.NoError(t, store.Write(filepath.Join(dir, "notes.txt"), "not a note"))
	require.NoError(t, store.Write(filepath.Join(dir, ".hidden", "secret.md"), ""))

	entries, err := store.List(dir)
	require.NoError(t, err)

	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	// Folders first, then notes sorted case-insensitively; .txt and
	// hidden directories are excluded.
	assert.Equal(t, []string{"archive", "apple", "old", "Zebra"}, titles)
	assert.True(t, entries[0].IsDir)
}

func TestNoteStore_Delete(t *testing.T) {
	store := NewNoteStore()
	dir := t.TempDir()

	t.Run("deletes a note", func(t *testing.T) {
		path := filepath.Join(dir, "gone.md")
		require.NoError(t, store.Write(path, "x"))
		require.NoError(t, store.Delete(path))
		_, err := store.Read(path)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("refuses non-empty folders", func(t *testing.T) {
		folder := filepath.Join(dir, "full")
		require.NoError(t, store.Write(filepath.Join(folder, "keep.md"), "x"))
		assert.Error(t, store.Delete(folder))
	})

	t.Run("deletes empty folders", func(t *testing.T) {
		folder := filepath.Join(dir, "empty")
		require.NoError(t, store.CreateFolder(folder))
		assert.NoError(t, store.Delete(folder))
	})

	t.Run("missing path maps to ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(filepath.Join(dir, "missing.md")), domain.ErrNotFound)
	})
}

func TestNoteStore_Watch(t *testing.T) {
	store := NewNoteStore()
	dir := t.TempDir()

	changes, err := store.Watch(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Write(filepath.Join(dir, "new.md"), "x"))

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no change signal after write")
	}
}

func TestNoteStore_CloseClosesChannel(t *testing.T) {
	store := NewNoteStore()
	dir := t.TempDir()

	changes, err := store.Watch(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	select {
	case _, ok := <-changes:
		assert.False(t, ok, "channel should close on Close")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}
