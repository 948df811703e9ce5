package driven

import "time"

// NoteRecord is a note's indexed metadata.
type NoteRecord struct {
	// ID is the stable identifier assigned at first indexing.
	ID string

	// Path is the absolute file path.
	Path string

	// Title is the note title (file name without extension).
	Title string

	// ModifiedAt is the file's last modification time.
	ModifiedAt time.Time
}

// NoteIndex persists note metadata and the recent-files list so the
// library can filter and the "Open Recent" list survives restarts.
type NoteIndex interface {
	// Upsert inserts or updates a note record keyed by path.
	Upsert(record NoteRecord) error

	// List returns records whose title contains the filter substring
	// (case-insensitive). An empty filter returns everything, newest
	// modification first.
	List(filter string) ([]NoteRecord, error)

	// Remove deletes the record for path, if present.
	Remove(path string) error

	// TouchRecent moves path to the top of the recent-files list.
	TouchRecent(path string) error

	// Recent returns up to limit recently opened paths, newest first.
	Recent(limit int) ([]string, error)

	// Close releases resources.
	Close() error
}
