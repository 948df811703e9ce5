package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/core/ports/driven"
)

func newTestIndex(t *testing.T) *NoteIndex {
	t.Helper()
	idx, err := NewNoteIndex(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestNoteIndex_UpsertAndList(t *testing.T) {
	idx := newTestIndex(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, idx.Upsert(driven.NoteRecord{Path: "/n/Home.md", Title: "Home", ModifiedAt: now}))
	require.NoError(t, idx.Upsert(driven.NoteRecord{Path: "/n/Project Plan.md", Title: "Project Plan", ModifiedAt: now.Add(-time.Hour)}))

	t.Run("assigns stable IDs", func(t *testing.T) {
		records, err := idx.List("")
		require.NoError(t, err)
		require.Len(t, records, 2)
		firstID := records[0].ID
		assert.NotEmpty(t, firstID)

		// Re-upserting the same path keeps the ID.
		require.NoError(t, idx.Upsert(driven.NoteRecord{Path: records[0].Path, Title: records[0].Title, ModifiedAt: now}))
		again, err := idx.List("")
		require.NoError(t, err)
		assert.Equal(t, firstID, again[0].ID)
	})

	t.Run("newest modification first", func(t *testing.T) {
		records, err := idx.List("")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Home", records[0].Title)
	})

	t.Run("case-insensitive title filter", func(t *testing.T) {
		records, err := idx.List("plan")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Project Plan", records[0].Title)
	})

	t.Run("LIKE wildcards in filter are literal", func(t *testing.T) {
		records, err := idx.List("%")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestNoteIndex_Remove(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Upsert(driven.NoteRecord{Path: "/n/gone.md", Title: "gone"}))
	require.NoError(t, idx.TouchRecent("/n/gone.md"))

	require.NoError(t, idx.Remove("/n/gone.md"))

	records, err := idx.List("")
	require.NoError(t, err)
	assert.Empty(t, records)

	recent, err := idx.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	// Removing an absent path is not an error.
	assert.NoError(t, idx.Remove("/n/never-existed.md"))
}

func TestNoteIndex_Recent(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.TouchRecent("/n/a.md"))
	require.NoError(t, idx.TouchRecent("/n/b.md"))
	require.NoError(t, idx.TouchRecent("/n/c.md"))
	// Re-opening moves a back to the top.
	require.NoError(t, idx.TouchRecent("/n/a.md"))

	recent, err := idx.Recent(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"/n/a.md", "/n/c.md"}, recent)
}

func TestNoteIndex_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	idx1, err := NewNoteIndex(dir)
	require.NoError(t, err)
	require.NoError(t, idx1.Upsert(driven.NoteRecord{Path: "/n/keep.md", Title: "keep"}))
	require.NoError(t, idx1.Close())

	idx2, err := NewNoteIndex(dir)
	require.NoError(t, err)
	defer idx2.Close()

	records, err := idx2.List("")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "keep", records[0].Title)
}
