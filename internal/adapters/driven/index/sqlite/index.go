// Package sqlite provides a NoteIndex backed by SQLite. The index holds
// derived note metadata and the recent-files list; the filesystem stays
// the source of truth for note content.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/marknote-dev/marknote/internal/adapters/driven/index/sqlite/migrations"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
)

// Ensure NoteIndex implements the interface.
var _ driven.NoteIndex = (*NoteIndex)(nil)

// NoteIndex is a SQLite-backed implementation of driven.NoteIndex.
type NoteIndex struct {
	db   *sql.DB
	path string
}

// NewNoteIndex creates a new SQLite index at the specified data
// directory. If dataDir is empty, defaults to ~/.marknote/data/index.db.
func NewNoteIndex(dataDir string) (*NoteIndex, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".marknote", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &NoteIndex{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return idx, nil
}

// Close closes the database connection.
func (i *NoteIndex) Close() error {
	return i.db.Close()
}

// Path returns the database file path.
func (i *NoteIndex) Path() string {
	return i.path
}

// Upsert inserts or updates a note record keyed by path. A fresh record
// gets a stable UUID that survives later metadata updates.
func (i *NoteIndex) Upsert(record driven.NoteRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	_, err := i.db.Exec(`
		INSERT INTO notes (id, path, title, modified_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			modified_at = excluded.modified_at
	`, record.ID, record.Path, record.Title, record.ModifiedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert note %s: %w", record.Path, err)
	}
	return nil
}

// List returns records whose title contains the filter substring
// (case-insensitive), newest modification first.
func (i *NoteIndex) List(filter string) ([]driven.NoteRecord, error) {
	rows, err := i.db.Query(`
		SELECT id, path, title, modified_at
		FROM notes
		WHERE title LIKE ? ESCAPE '\'
		ORDER BY modified_at DESC, title ASC
	`, "%"+escapeLike(filter)+"%")
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var records []driven.NoteRecord
	for rows.Next() {
		var rec driven.NoteRecord
		var modifiedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Title, &modifiedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if modifiedAt.Valid {
			rec.ModifiedAt = modifiedAt.Time
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Remove deletes the record for path and its recent entry, if present.
func (i *NoteIndex) Remove(path string) error {
	if _, err := i.db.Exec("DELETE FROM notes WHERE path = ?", path); err != nil {
		return fmt.Errorf("remove note %s: %w", path, err)
	}
	if _, err := i.db.Exec("DELETE FROM recent_notes WHERE path = ?", path); err != nil {
		return fmt.Errorf("remove recent %s: %w", path, err)
	}
	return nil
}

// TouchRecent moves path to the top of the recent-files list.
func (i *NoteIndex) TouchRecent(path string) error {
	_, err := i.db.Exec(`
		INSERT INTO recent_notes (path, opened_at)
		VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at
	`, path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch recent %s: %w", path, err)
	}
	return nil
}

// Recent returns up to limit recently opened paths, newest first.
func (i *NoteIndex) Recent(limit int) ([]string, error) {
	rows, err := i.db.Query(`
		SELECT path FROM recent_notes
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent notes: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan recent: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// escapeLike escapes LIKE wildcards in a user-supplied filter.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// migrate runs all pending migrations.
func (i *NoteIndex) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := i.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := i.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := i.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := i.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
