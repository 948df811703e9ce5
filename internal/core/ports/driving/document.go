package driving

import (
	"github.com/marknote-dev/marknote/internal/core/domain"
)

// DocumentService tracks the single currently open document's content and
// persistence state.
type DocumentService interface {
	// Current returns the open document. Never nil.
	Current() *domain.Document

	// Open loads the note at path into the session, resetting the
	// dirty state. Returns domain.ErrUnsavedChanges if the current
	// document is dirty and discard is false.
	Open(path string, discard bool) error

	// New replaces the session with an empty unsaved document.
	// Returns domain.ErrUnsavedChanges if dirty and discard is false.
	New(discard bool) error

	// SetContent replaces the in-memory buffer. Dirtiness is derived
	// against the last-saved snapshot.
	SetContent(text string)

	// Save writes the buffer to the document's path. Returns
	// domain.ErrNoDocumentPath for unsaved new documents.
	Save() error

	// SaveAs associates path (ensuring a .md extension) and saves.
	SaveAs(path string) (string, error)

	// Close ends the session. Returns domain.ErrUnsavedChanges if
	// dirty and discard is false.
	Close(discard bool) error

	// AutoSaveTick saves if and only if the document is dirty and has
	// a path. Returns true when a save happened.
	AutoSaveTick() (bool, error)

	// TableOfContents generates a Markdown ToC for the buffer.
	TableOfContents(maxDepth int) string

	// ExportHTML renders the buffer to a standalone HTML file at path.
	ExportHTML(path string) error
}
