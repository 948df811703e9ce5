package driven

import (
	"github.com/marknote-dev/marknote/internal/core/domain"
)

// NoteStore provides filesystem access to the notes workspace.
// Notes are plain Markdown files; there is no custom format.
type NoteStore interface {
	// Read returns the content of the note at path.
	Read(path string) (string, error)

	// Write persists content to path, creating parent directories.
	Write(path string, content string) error

	// List returns all entries under root, folders first, sorted
	// case-insensitively within each group.
	List(root string) ([]domain.NoteInfo, error)

	// CreateFolder creates a directory under root.
	CreateFolder(path string) error

	// Delete removes a note file or an empty folder.
	Delete(path string) error

	// Watch delivers a signal whenever the workspace changes on disk.
	// The channel closes when the store is closed.
	Watch(root string) (<-chan struct{}, error)

	// Close stops any watcher and releases resources.
	Close() error
}
