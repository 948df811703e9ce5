// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/marknote-dev/marknote/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewEditor is the split editor/preview view.
	ViewEditor ViewType = iota
	// ViewLibrary is the notes library browser.
	ViewLibrary
	// ViewAssist is the AI assistant panel.
	ViewAssist
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewEditor:
		return "editor"
	case ViewLibrary:
		return "library"
	case ViewAssist:
		return "assist"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// NoteSelected is sent when the library picks a note to open.
type NoteSelected struct {
	Path string
}

// NoteOpened signals a note-open attempt completed.
type NoteOpened struct {
	Path string
	Err  error
}

// NotesLoaded carries the library listing and recent paths.
type NotesLoaded struct {
	Notes  []domain.NoteInfo
	Recent []string
	Err    error
}

// NoteCreated signals a note was created.
type NoteCreated struct {
	Path string
	Err  error
}

// NoteDeleted signals a note or folder was deleted.
type NoteDeleted struct {
	Path string
	Err  error
}

// LibraryChanged signals the workspace changed on disk.
type LibraryChanged struct{}

// DocumentSaved signals a save attempt completed.
type DocumentSaved struct {
	Path string
	Err  error
}

// ExportCompleted signals an HTML export finished.
type ExportCompleted struct {
	Path string
	Err  error
}

// AutoSaveTick fires when the auto-save timer elapses.
type AutoSaveTick struct{}

// AutoSaved reports the outcome of an auto-save tick.
type AutoSaved struct {
	Saved bool
	Err   error
}

// AssistCompleted carries an assistant result back to the model. Stale
// results (superseded by a newer request) are dropped on arrival.
type AssistCompleted struct {
	Result domain.AssistResult
}

// FollowUpRequested asks the editor to apply an assistant result.
type FollowUpRequested struct {
	FollowUp      domain.FollowUp
	Text          string
	FromSelection bool
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Settings *domain.AppSettings
	Err      error
}
