// Package tui provides the interactive terminal user interface for marknote.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document tracks the open document session.
	Document driving.DocumentService

	// Assistant dispatches AI requests.
	Assistant driving.AssistantService

	// Library manages the notes workspace.
	Library driving.LibraryService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Clipboard writes assistant results to the system clipboard.
	// Optional; the copy follow-up degrades gracefully without it.
	Clipboard driven.Clipboard
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	document driving.DocumentService,
	assistant driving.AssistantService,
	library driving.LibraryService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Document:  document,
		Assistant: assistant,
		Library:   library,
		Settings:  settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
