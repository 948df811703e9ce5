package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// settingsService backs the config commands.
var settingsService driving.SettingsService

// configPath is the settings file location, shown by 'config path'.
var configPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Marknote settings",
	Long: `View and change settings without entering the TUI.

Keys for 'config set':
  provider          - AI provider: gemini, openai, anthropic, ollama
  model             - Model name (blank selects the provider default)
  autosave          - Auto-save: on, off
  autosave-interval - Auto-save interval in seconds
  sync-scroll       - Preview scroll sync: on, off
  folder            - Notes folder (takes effect on next launch)`,
	RunE: runConfigGet,
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current settings",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the AI provider API key",
	Long:  `Reads the API key without echoing it to the terminal.`,
	RunE:  runConfigSetKey,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

// SetSettingsService sets the settings service used by the config commands.
func SetSettingsService(service driving.SettingsService) {
	settingsService = service
}

// SetConfigPath sets the settings file location shown by 'config path'.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[AI]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	model := settings.LLM.Model
	if model == "" {
		model = domain.DefaultModels()[settings.LLM.Provider] + " (default)"
	}
	cmd.Printf("  Model: %s\n", model)
	if settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Editor]")
	cmd.Printf("  Auto-save: %s\n", onOff(settings.Editor.AutoSaveEnabled))
	cmd.Printf("  Auto-save interval: %ds\n", settings.Editor.AutoSaveIntervalSecs)
	cmd.Printf("  Sync scroll: %s\n", onOff(settings.Editor.SyncScroll))
	cmd.Println()

	cmd.Println("[Notes]")
	folder := settings.Notes.Folder
	if folder == "" {
		folder = "(default)"
	}
	cmd.Printf("  Folder: %s\n", folder)
	if settings.Notes.LastNote != "" {
		cmd.Printf("  Last note: %s\n", settings.Notes.LastNote)
	}

	if !settings.LLM.IsConfigured() {
		cmd.Println()
		cmd.Println("AI features are disabled. Run 'marknote config set-key' to configure.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "provider":
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("unknown provider: %s", value)
		}
		settings.LLM.Provider = provider
		settings.LLM.Model = "" // provider default

	case "model":
		settings.LLM.Model = value

	case "autosave":
		enabled, err := parseOnOff(value)
		if err != nil {
			return err
		}
		settings.Editor.AutoSaveEnabled = enabled

	case "autosave-interval":
		secs, err := strconv.Atoi(value)
		if err != nil || secs < 1 {
			return errors.New("autosave-interval must be a positive number of seconds")
		}
		settings.Editor.AutoSaveIntervalSecs = secs

	case "sync-scroll":
		enabled, err := parseOnOff(value)
		if err != nil {
			return err
		}
		settings.Editor.SyncScroll = enabled

	case "folder":
		settings.Notes.Folder = value

	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s to %s\n", key, value)
	if key == "provider" || key == "folder" {
		cmd.Println("Takes effect on next launch.")
	}
	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.LLM.Provider.RequiresAPIKey() {
		return fmt.Errorf("%s does not use an API key", settings.LLM.Provider.Description())
	}

	cmd.Printf("Enter API key for %s: ", settings.LLM.Provider.Description())
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key must not be empty")
	}

	settings.LLM.APIKey = apiKey
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("API key saved (%s)\n", maskAPIKey(apiKey))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configPath == "" {
		return errors.New("configuration path not set")
	}
	cmd.Println(configPath)
	return nil
}

// Helper functions.

func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %s", value)
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
