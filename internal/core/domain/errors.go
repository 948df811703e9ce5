package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested note or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a note or folder already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsavedChanges indicates the document has unsaved changes.
	// Close and open operations must be confirmed or discarded first.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrNoDocumentPath indicates a save was requested for a document
	// that has no associated file path yet.
	ErrNoDocumentPath = errors.New("document has no file path")

	// ErrAIUnavailable indicates the LLM service is not configured.
	// AI actions are disabled until the user supplies an API key.
	ErrAIUnavailable = errors.New("AI assistant unavailable")

	// ErrEmptyPrompt indicates an action requiring a prompt was
	// dispatched with empty prompt text.
	ErrEmptyPrompt = errors.New("prompt must not be empty")

	// ErrEmptySelection indicates an action requiring a selection was
	// dispatched with no text selected.
	ErrEmptySelection = errors.New("no text selected")

	// ErrEmptyDocument indicates a whole-document action was dispatched
	// against an empty document.
	ErrEmptyDocument = errors.New("document is empty")
)
