package driving

import (
	"github.com/marknote-dev/marknote/internal/core/domain"
)

// LibraryService manages the notes workspace listing.
type LibraryService interface {
	// Notes lists workspace entries whose names contain filter
	// (case-insensitive). Empty filter lists everything.
	Notes(filter string) ([]domain.NoteInfo, error)

	// Titles returns all note titles in the workspace, for auto-link
	// and related-note actions.
	Titles() ([]string, error)

	// CreateNote creates an empty note named name under dir and
	// returns its path.
	CreateNote(dir, name string) (string, error)

	// CreateFolder creates a folder named name under dir.
	CreateFolder(dir, name string) error

	// Delete removes a note or empty folder.
	Delete(path string) error

	// RecordOpened moves path to the top of the recent list.
	RecordOpened(path string) error

	// Recent returns recently opened note paths, newest first.
	Recent(limit int) ([]string, error)

	// Changes delivers a signal when the workspace changes on disk,
	// so the library view can refresh.
	Changes() <-chan struct{}

	// Root returns the workspace root directory.
	Root() string
}
