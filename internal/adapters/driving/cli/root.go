// Package cli provides the cobra command-line interface for Marknote.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
	"github.com/marknote-dev/marknote/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// TUIConfig holds the services wired into the TUI.
type TUIConfig struct {
	DocumentService  driving.DocumentService
	AssistantService driving.AssistantService
	LibraryService   driving.LibraryService
	SettingsService  driving.SettingsService
	Clipboard        driven.Clipboard
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// rootCmd launches the TUI. Subcommands cover one-shot AI use and
// configuration without entering the interface.
var rootCmd = &cobra.Command{
	Use:   "marknote [path]",
	Short: "AI-assisted Markdown notes in the terminal",
	Long: `Marknote is a terminal Markdown note-taking app with a live preview
and an AI assistant.

Running marknote without arguments opens the workspace, restoring the
last open note. Pass a path to open that note directly.

Controls:
  ctrl+s - Save
  ctrl+o - Library
  ctrl+j - AI assistant
  ctrl+p - Cycle edit/split/preview layout
  f1     - Full keybinding reference`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runRoot,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetTUIConfig sets the services used by the root command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces; the alt screen otherwise
	// swallows them.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{}
	if tuiConfig != nil {
		ports.Document = tuiConfig.DocumentService
		ports.Assistant = tuiConfig.AssistantService
		ports.Library = tuiConfig.LibraryService
		ports.Settings = tuiConfig.SettingsService
		ports.Clipboard = tuiConfig.Clipboard
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Log lines on stderr would corrupt the rendered screen.
	if verbose {
		redirectLogsToFile()
	}

	if len(args) == 1 {
		app.OpenOnStart(args[0])
	} else if last := lastOpenNote(); last != "" {
		app.OpenOnStart(last)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// lastOpenNote returns the note to restore, best-effort.
func lastOpenNote() string {
	if tuiConfig == nil || tuiConfig.SettingsService == nil {
		return ""
	}
	settings, err := tuiConfig.SettingsService.Get()
	if err != nil || settings == nil {
		return ""
	}
	return settings.Notes.LastNote
}

func redirectLogsToFile() {
	path := filepath.Join(os.TempDir(), "marknote.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	logger.SetOutput(f)
	logger.Info("logging to %s", path)
}
