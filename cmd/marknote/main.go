// Command marknote is the entry point for the Marknote terminal
// Markdown editor. It wires the driven adapters into the core services
// and hands them to the CLI, which launches the TUI by default.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marknote-dev/marknote/internal/adapters/driven/ai"
	"github.com/marknote-dev/marknote/internal/adapters/driven/clipboard"
	"github.com/marknote-dev/marknote/internal/adapters/driven/config/file"
	"github.com/marknote-dev/marknote/internal/adapters/driven/index/sqlite"
	"github.com/marknote-dev/marknote/internal/adapters/driven/notestore/filesystem"
	"github.com/marknote-dev/marknote/internal/adapters/driving/cli"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/services"
	"github.com/marknote-dev/marknote/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	root, err := notesRoot(settings.Notes.Folder)
	if err != nil {
		return err
	}

	store := filesystem.NewNoteStore()
	defer store.Close() //nolint:errcheck // shutdown path

	noteIndex, err := sqlite.NewNoteIndex("")
	if err != nil {
		return fmt.Errorf("failed to open note index: %w", err)
	}
	defer noteIndex.Close() //nolint:errcheck // shutdown path

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("failed to open prompt store: %w", err)
	}

	// A missing or invalid AI configuration disables the assistant;
	// note-taking keeps working without it.
	var llm driven.LLMService
	if settings.LLM.IsConfigured() {
		llm, err = ai.CreateAndValidateLLMService(&settings.LLM)
		if err != nil {
			logger.Warn("AI disabled: %v", err)
			llm = nil
		}
	}

	documentService := services.NewDocumentService(store)
	libraryService := services.NewLibraryService(store, noteIndex, root)
	assistantService := services.NewAssistantService(llm, promptStore)

	cli.SetTUIConfig(&cli.TUIConfig{
		DocumentService:  documentService,
		AssistantService: assistantService,
		LibraryService:   libraryService,
		SettingsService:  settingsService,
		Clipboard:        clipboard.New(),
	})
	cli.SetAssistantService(assistantService)
	cli.SetLibraryService(libraryService)
	cli.SetSettingsService(settingsService)
	cli.SetConfigPath(configStore.Path())

	return cli.Execute()
}

// notesRoot resolves the workspace directory, creating it if needed.
// An unset folder defaults to ~/Documents/Marknote.
func notesRoot(folder string) (string, error) {
	switch {
	case folder == "":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		folder = filepath.Join(home, "Documents", "Marknote")

	case strings.HasPrefix(folder, "~"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		folder = filepath.Join(home, strings.TrimPrefix(folder, "~"))
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create notes folder: %w", err)
	}
	return folder, nil
}
