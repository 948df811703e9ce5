// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionProvider
	SectionModel
	SectionInterval
	SectionFolder
)

// Overview rows.
const (
	rowProvider = iota
	rowModel
	rowAutoSave
	rowInterval
	rowSyncScroll
	rowFolder
	rowCount
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error
	flash    string

	// Navigation state
	section      Section
	selected     int
	focusedField int // for the API key input in the provider section

	// Text inputs
	apiKeyInput textinput.Model
	textInput   textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = "Enter API key (blank keeps the stored key)"
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.CharLimit = 256

	textInput := textinput.New()
	textInput.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		apiKeyInput:     apiKeyInput,
		textInput:       textInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// saveSettings returns a command that persists the edited settings.
func (v *View) saveSettings() tea.Cmd {
	settings := v.settings
	return func() tea.Msg {
		err := v.settingsService.Save(settings)
		return messages.SettingsSaved{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.flash = "Saved"
			return v, v.loadSettings()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Global escape to go back
	if msg.String() == "esc" {
		switch v.section {
		case SectionOverview:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewEditor}
			}
		default:
			v.section = SectionOverview
			v.focusedField = 0
			v.apiKeyInput.Blur()
			v.textInput.Blur()
			return v, nil
		}
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionProvider:
		return v.handleProviderKeys(msg)
	case SectionModel, SectionInterval, SectionFolder:
		return v.handleTextKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.settings == nil {
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < rowCount-1 {
			v.selected++
		}
	case keyEnter:
		return v.openRow()
	}
	return v, nil
}

// openRow edits or toggles the selected overview row.
func (v *View) openRow() (*View, tea.Cmd) {
	v.flash = ""
	switch v.selected {
	case rowProvider:
		v.section = SectionProvider
		v.focusedField = 0
		v.apiKeyInput.SetValue("")

	case rowModel:
		v.section = SectionModel
		v.textInput.Placeholder = domain.DefaultModels()[v.settings.LLM.Provider]
		v.textInput.SetValue(v.settings.LLM.Model)
		return v, v.textInput.Focus()

	case rowAutoSave:
		v.settings.Editor.AutoSaveEnabled = !v.settings.Editor.AutoSaveEnabled
		return v, v.saveSettings()

	case rowInterval:
		v.section = SectionInterval
		v.textInput.Placeholder = "30"
		v.textInput.SetValue(strconv.Itoa(v.settings.Editor.AutoSaveIntervalSecs))
		return v, v.textInput.Focus()

	case rowSyncScroll:
		v.settings.Editor.SyncScroll = !v.settings.Editor.SyncScroll
		return v, v.saveSettings()

	case rowFolder:
		v.section = SectionFolder
		v.textInput.Placeholder = "~/notes"
		v.textInput.SetValue(v.settings.Notes.Folder)
		return v, v.textInput.Focus()
	}
	return v, nil
}

func (v *View) handleProviderKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := domain.AllProviders()

	// If we're focused on the API key input
	if v.focusedField == 1 {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.focusedField = 0
			v.apiKeyInput.Blur()
			return v, nil
		case keyEnter:
			return v.applyProvider(providers[v.providerIndex()], v.apiKeyInput.Value())
		default:
			var cmd tea.Cmd
			v.apiKeyInput, cmd = v.apiKeyInput.Update(msg)
			return v, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(providers)-1 {
			v.selected++
		}
	case keyTab:
		if providers[v.providerIndex()].RequiresAPIKey() {
			v.focusedField = 1
			return v, v.apiKeyInput.Focus()
		}
	case keyEnter:
		provider := providers[v.providerIndex()]
		if provider.RequiresAPIKey() && !v.hasStoredKey(provider) {
			// Need an API key first
			v.focusedField = 1
			return v, v.apiKeyInput.Focus()
		}
		return v.applyProvider(provider, v.apiKeyInput.Value())
	}
	return v, nil
}

// hasStoredKey reports whether switching to provider can reuse the
// currently stored key.
func (v *View) hasStoredKey(provider domain.AIProvider) bool {
	return v.settings != nil &&
		v.settings.LLM.Provider == provider &&
		v.settings.LLM.APIKey != ""
}

func (v *View) providerIndex() int {
	providers := domain.AllProviders()
	if v.selected < 0 || v.selected >= len(providers) {
		return 0
	}
	return v.selected
}

// applyProvider saves the provider change. Provider changes take effect
// on the next launch; the running assistant keeps its current client.
func (v *View) applyProvider(provider domain.AIProvider, apiKey string) (*View, tea.Cmd) {
	if v.settings == nil {
		return v, nil
	}
	v.settings.LLM.Provider = provider
	v.settings.LLM.Model = "" // provider default
	if apiKey != "" {
		v.settings.LLM.APIKey = apiKey
	}

	v.section = SectionOverview
	v.selected = rowProvider
	v.focusedField = 0
	v.apiKeyInput.SetValue("")
	v.apiKeyInput.Blur()
	v.flash = "Saved. Provider changes apply on next launch."
	return v, v.saveSettings()
}

// handleTextKeys drives the single-field sections (model, interval, folder).
func (v *View) handleTextKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		value := strings.TrimSpace(v.textInput.Value())
		section := v.section
		v.section = SectionOverview
		v.textInput.Blur()

		switch section {
		case SectionModel:
			v.settings.LLM.Model = value
		case SectionInterval:
			secs, err := strconv.Atoi(value)
			if err != nil || secs < 1 {
				v.err = fmt.Errorf("auto-save interval must be a positive number of seconds")
				return v, nil
			}
			v.settings.Editor.AutoSaveIntervalSecs = secs
		case SectionFolder:
			v.settings.Notes.Folder = value
		}
		return v, v.saveSettings()
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}
	if v.flash != "" {
		b.WriteString(v.styles.Success.Render(v.flash))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionProvider:
		b.WriteString(v.renderProviderSelect())
	case SectionModel:
		b.WriteString(v.renderTextSection("Model", "Blank selects the provider default."))
	case SectionInterval:
		b.WriteString(v.renderTextSection("Auto-save interval (seconds)", ""))
	case SectionFolder:
		b.WriteString(v.renderTextSection("Notes folder", "Takes effect on next launch."))
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	model := v.settings.LLM.Model
	if model == "" {
		model = domain.DefaultModels()[v.settings.LLM.Provider] + " (default)"
	}

	rows := []struct {
		label  string
		value  string
		status string
	}{
		{
			label:  "AI Provider",
			value:  v.settings.LLM.Provider.Description(),
			status: v.providerStatus(),
		},
		{label: "Model", value: model},
		{label: "Auto-save", value: onOff(v.settings.Editor.AutoSaveEnabled)},
		{label: "Auto-save interval", value: fmt.Sprintf("%ds", v.settings.Editor.AutoSaveIntervalSecs)},
		{label: "Sync scroll", value: onOff(v.settings.Editor.SyncScroll)},
		{label: "Notes folder", value: valueOr(v.settings.Notes.Folder, "(default)")},
	}

	for i, row := range rows {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, row.label, row.value)
		if row.status != "" {
			line += " " + row.status
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (v *View) providerStatus() string {
	if v.settings.LLM.IsConfigured() {
		return v.styles.Success.Render("[configured]")
	}
	return v.styles.Warning.Render("[needs API key]")
}

func (v *View) renderProviderSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select AI Provider"))
	b.WriteString("\n\n")

	providers := domain.AllProviders()
	for i, provider := range providers {
		indicator := "  "
		if i == v.selected && v.focusedField == 0 {
			indicator = "> "
		}

		current := ""
		if provider == v.settings.LLM.Provider {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s%s", indicator, provider.Description(), current)
		if i == v.selected && v.focusedField == 0 {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")

		// Show default model
		if model, ok := domain.DefaultModels()[provider]; ok {
			b.WriteString(v.styles.Muted.Render("    Model: " + model))
			b.WriteString("\n")
		}
	}

	// API key input (if selected provider requires it)
	if providers[v.providerIndex()].RequiresAPIKey() {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("API Key:"))
		b.WriteString("\n")
		b.WriteString(v.apiKeyInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderTextSection(title, hint string) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(v.textInput.View())
	b.WriteString("\n")
	if hint != "" {
		b.WriteString(v.styles.Muted.Render(hint))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit/toggle  [esc] back")
	case SectionProvider:
		if v.focusedField == 1 {
			return v.styles.Help.Render("[tab] back to list  [enter] save  [esc] back")
		}
		return v.styles.Help.Render("[j/k] navigate  [tab] API key  [enter] select  [esc] back")
	case SectionModel, SectionInterval, SectionFolder:
		return v.styles.Help.Render("[enter] save  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// CurrentSection returns the active section.
func (v *View) CurrentSection() Section {
	return v.section
}

// Selected returns the current selection index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.err = nil
	v.flash = ""
	v.apiKeyInput.SetValue("")
	v.apiKeyInput.Blur()
	v.textInput.SetValue("")
	v.textInput.Blur()
}
