package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/keymap"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/views/assist"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/views/editor"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/views/help"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/views/library"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/views/settings"
	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/logger"
)

// App is the root Bubbletea model. It owns the views, routes messages to
// the active one, and runs the auto-save and workspace-watch loops.
type App struct {
	ports  *Ports
	styles *styles.Styles
	keymap *keymap.KeyMap

	editor   *editor.View
	library  *library.View
	assist   *assist.View
	settings *settings.View
	help     *help.View

	currentView messages.ViewType
	appSettings *domain.AppSettings

	// pendingOpen holds a note path waiting on discard confirmation.
	pendingOpen string
	// pendingNew marks a new-document request waiting on confirmation.
	pendingNew bool
	// confirmQuit marks that quit was pressed once with unsaved changes.
	confirmQuit bool

	autoSaveArmed bool
	initialNote   string

	width  int
	height int
	ready  bool
	err    error
}

// NewApp creates the root model. Returns an error when required ports
// are missing.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPorts, err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		styles:      s,
		keymap:      km,
		editor:      editor.NewView(s, km, ports.Document),
		library:     library.NewView(s, km, ports.Library),
		assist:      assist.NewView(s, ports.Assistant, ports.Library, ports.Clipboard),
		settings:    settings.NewView(s, ports.Settings),
		help:        help.NewView(s, km),
		currentView: messages.ViewEditor,
	}, nil
}

// OpenOnStart sets a note to open when the program starts.
func (a *App) OpenOnStart(path string) {
	a.initialNote = path
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("marknote"),
		a.editor.Init(),
		a.loadSettings(),
		a.waitForChange(),
	}
	if a.initialNote != "" {
		cmds = append(cmds, a.openNote(a.initialNote, false))
	}
	return tea.Batch(cmds...)
}

// Update routes messages through the Elm loop.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.editor.SetDimensions(msg.Width, msg.Height)
		a.library.SetDimensions(msg.Width, msg.Height)
		a.assist.SetDimensions(msg.Width, msg.Height)
		a.settings.SetDimensions(msg.Width, msg.Height)
		a.help.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.Quit:
		return a, tea.Quit

	case messages.NoteSelected:
		return a, a.openNote(msg.Path, false)

	case messages.NoteOpened:
		return a.handleNoteOpened(msg)

	case messages.SettingsLoaded:
		return a.handleSettingsLoaded(msg)

	case messages.SettingsSaved:
		model, cmd := a.handleSettingsSaved(msg)
		// The settings view also reacts (reload, error display).
		var viewCmd tea.Cmd
		a.settings, viewCmd = a.settings.Update(msg)
		return model, tea.Batch(cmd, viewCmd)

	case messages.AutoSaveTick:
		return a.handleAutoSaveTick()

	case messages.AutoSaved:
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd

	case messages.LibraryChanged:
		var cmd tea.Cmd
		a.library, cmd = a.library.Update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case messages.AssistCompleted:
		// Routed to the panel even when another view is active so a
		// stale in-flight request is always resolved.
		var cmd tea.Cmd
		a.assist, cmd = a.assist.Update(msg)
		return a, cmd

	case messages.FollowUpRequested:
		return a.handleFollowUp(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Warn("tui error: %v", msg.Err)
		return a.forwardToActive(msg)
	}

	return a.forwardToActive(msg)
}

// handleKeyMsg handles global chords before forwarding to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Discard confirmations take priority.
	if a.pendingOpen != "" || a.pendingNew {
		return a.handleConfirmKeys(keyStr)
	}

	if keymap.Matches(keyStr, a.keymap.Quit) {
		if a.ports.Document.Current().Dirty() && !a.confirmQuit {
			a.confirmQuit = true
			return a, nil
		}
		return a, tea.Quit
	}
	a.confirmQuit = false

	// Editor chords apply unless a path prompt is capturing input.
	if a.currentView == messages.ViewEditor && !a.editor.PathInputOpen() {
		switch {
		case keymap.Matches(keyStr, a.keymap.Save):
			return a, a.editor.Save()
		case keymap.Matches(keyStr, a.keymap.NewNote):
			return a, a.newNote(false)
		case keymap.Matches(keyStr, a.keymap.Library):
			return a.switchView(messages.ViewLibrary)
		case keymap.Matches(keyStr, a.keymap.Assist):
			return a.switchView(messages.ViewAssist)
		case keymap.Matches(keyStr, a.keymap.Settings):
			return a.switchView(messages.ViewSettings)
		case keymap.Matches(keyStr, a.keymap.Help):
			return a.switchView(messages.ViewHelp)
		case keymap.Matches(keyStr, a.keymap.TogglePreview):
			a.editor.ToggleLayout()
			return a, nil
		case keymap.Matches(keyStr, a.keymap.Export):
			return a, a.editor.StartExport()
		}
	}

	return a.forwardToActive(msg)
}

// handleConfirmKeys resolves a discard confirmation.
func (a *App) handleConfirmKeys(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "y", "Y":
		if a.pendingNew {
			a.pendingNew = false
			return a, a.newNote(true)
		}
		path := a.pendingOpen
		a.pendingOpen = ""
		return a, a.openNote(path, true)
	case "n", "N", "esc":
		a.pendingOpen = ""
		a.pendingNew = false
	}
	return a, nil
}

// switchView activates a view, resetting it the way it expects.
func (a *App) switchView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view

	switch view {
	case messages.ViewEditor:
		a.editor.Reset()
		return a, nil
	case messages.ViewLibrary:
		a.library.Reset()
		return a, a.library.Init()
	case messages.ViewAssist:
		a.assist.Reset()
		a.assist.SetInput(a.editor.SelectedText(), a.ports.Document.Current().Content)
		return a, a.assist.Init()
	case messages.ViewSettings:
		a.settings.Reset()
		return a, a.settings.Init()
	case messages.ViewHelp:
		return a, a.help.Init()
	}
	return a, nil
}

// forwardToActive sends a message to the active view.
func (a *App) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewEditor:
		a.editor, cmd = a.editor.Update(msg)
	case messages.ViewLibrary:
		a.library, cmd = a.library.Update(msg)
	case messages.ViewAssist:
		a.assist, cmd = a.assist.Update(msg)
	case messages.ViewSettings:
		a.settings, cmd = a.settings.Update(msg)
	case messages.ViewHelp:
		a.help, cmd = a.help.Update(msg)
	}
	return a, cmd
}

// openNote opens a note in the document session.
func (a *App) openNote(path string, discard bool) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Document.Open(path, discard)
		return messages.NoteOpened{Path: path, Err: err}
	}
}

// handleNoteOpened finishes an open attempt: unsaved changes queue a
// confirmation, success lands in the editor.
func (a *App) handleNoteOpened(msg messages.NoteOpened) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrUnsavedChanges) {
			a.pendingOpen = msg.Path
			return a, nil
		}
		a.err = msg.Err
		return a.forwardToActive(messages.ErrorOccurred{Err: msg.Err})
	}

	a.currentView = messages.ViewEditor
	a.editor.Reset()
	return a, a.recordOpened(msg.Path)
}

// recordOpened updates the recent list and the restored last note.
// Both are best-effort.
func (a *App) recordOpened(path string) tea.Cmd {
	return func() tea.Msg {
		if err := a.ports.Library.RecordOpened(path); err != nil {
			logger.Warn("record recent: %v", err)
		}
		settings, err := a.ports.Settings.Get()
		if err != nil {
			logger.Warn("load settings: %v", err)
			return nil
		}
		settings.Notes.LastNote = path
		if err := a.ports.Settings.Save(settings); err != nil {
			logger.Warn("persist last note: %v", err)
		}
		return nil
	}
}

// newNote starts a fresh document.
func (a *App) newNote(discard bool) tea.Cmd {
	err := a.ports.Document.New(discard)
	if err != nil {
		if errors.Is(err, domain.ErrUnsavedChanges) {
			a.pendingNew = true
			return nil
		}
		return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}
	a.currentView = messages.ViewEditor
	a.editor.Reset()
	return nil
}

// handleFollowUp applies an assistant result to the editor. Replace
// without a selection appends, so whole-document commands never clobber
// the buffer.
func (a *App) handleFollowUp(msg messages.FollowUpRequested) (tea.Model, tea.Cmd) {
	switch msg.FollowUp {
	case domain.FollowUpInsert:
		a.editor.InsertAtCursor(msg.Text)
	case domain.FollowUpReplace:
		if msg.FromSelection {
			a.editor.ReplaceSelection(msg.Text)
		} else {
			a.editor.AppendText(msg.Text)
		}
	case domain.FollowUpReplaceDocument:
		a.editor.ReplaceAll(msg.Text)
	case domain.FollowUpCopy:
		// handled inside the assist panel
	}

	a.currentView = messages.ViewEditor
	return a, nil
}

// loadSettings loads settings at startup.
func (a *App) loadSettings() tea.Cmd {
	return func() tea.Msg {
		settings, err := a.ports.Settings.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// handleSettingsLoaded applies loaded settings to the running app.
func (a *App) handleSettingsLoaded(msg messages.SettingsLoaded) (tea.Model, tea.Cmd) {
	var viewCmd tea.Cmd
	a.settings, viewCmd = a.settings.Update(msg)

	if msg.Err != nil {
		logger.Warn("load settings: %v", msg.Err)
		return a, viewCmd
	}

	a.appSettings = msg.Settings
	a.editor.SetSyncScroll(msg.Settings.Editor.SyncScroll)

	var cmds []tea.Cmd
	if viewCmd != nil {
		cmds = append(cmds, viewCmd)
	}
	if msg.Settings.Editor.AutoSaveEnabled && !a.autoSaveArmed {
		a.autoSaveArmed = true
		cmds = append(cmds, a.armAutoSave())
	}
	return a, tea.Batch(cmds...)
}

// handleSettingsSaved applies changed settings to the running app.
func (a *App) handleSettingsSaved(msg messages.SettingsSaved) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Settings == nil {
		return a, nil
	}

	a.appSettings = msg.Settings
	a.editor.SetSyncScroll(msg.Settings.Editor.SyncScroll)

	if msg.Settings.Editor.AutoSaveEnabled && !a.autoSaveArmed {
		a.autoSaveArmed = true
		return a, a.armAutoSave()
	}
	return a, nil
}

// armAutoSave schedules the next auto-save tick.
func (a *App) armAutoSave() tea.Cmd {
	interval := 30
	if a.appSettings != nil && a.appSettings.Editor.AutoSaveIntervalSecs > 0 {
		interval = a.appSettings.Editor.AutoSaveIntervalSecs
	}
	return tea.Tick(time.Duration(interval)*time.Second, func(time.Time) tea.Msg {
		return messages.AutoSaveTick{}
	})
}

// handleAutoSaveTick saves eligible documents and re-arms the timer.
// A disabled timer stops here and is re-armed when settings change back.
func (a *App) handleAutoSaveTick() (tea.Model, tea.Cmd) {
	if a.appSettings == nil || !a.appSettings.Editor.AutoSaveEnabled {
		a.autoSaveArmed = false
		return a, nil
	}

	save := func() tea.Msg {
		saved, err := a.ports.Document.AutoSaveTick()
		return messages.AutoSaved{Saved: saved, Err: err}
	}
	return a, tea.Batch(save, a.armAutoSave())
}

// waitForChange blocks on the workspace watcher and reports a change.
func (a *App) waitForChange() tea.Cmd {
	ch := a.ports.Library.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.LibraryChanged{}
	}
}

// View renders the active view.
func (a *App) View() string {
	if !a.ready {
		return "Loading marknote..."
	}

	if a.pendingOpen != "" || a.pendingNew {
		return a.styles.Warning.Render("Unsaved changes. Discard them? [y/n]")
	}
	if a.confirmQuit {
		return a.styles.Warning.Render("Unsaved changes. Press ctrl+c again to quit, any other key to stay.")
	}

	switch a.currentView {
	case messages.ViewEditor:
		return a.editor.View()
	case messages.ViewLibrary:
		return a.library.View()
	case messages.ViewAssist:
		return a.assist.View()
	case messages.ViewSettings:
		return a.settings.View()
	case messages.ViewHelp:
		return a.help.View()
	default:
		return ""
	}
}

// Run starts the Bubbletea program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// Accessors for testing.

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last routed error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the first window size arrived.
func (a *App) Ready() bool {
	return a.ready
}

// Editor returns the editor view.
func (a *App) Editor() *editor.View {
	return a.editor
}

// Library returns the library view.
func (a *App) Library() *library.View {
	return a.library
}

// Assist returns the assistant panel.
func (a *App) Assist() *assist.View {
	return a.assist
}

// Settings returns the settings view.
func (a *App) Settings() *settings.View {
	return a.settings
}

// PendingDiscard reports whether a discard confirmation is showing.
func (a *App) PendingDiscard() bool {
	return a.pendingOpen != "" || a.pendingNew
}

// SetDimensions sets dimensions on the app and all views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.editor.SetDimensions(width, height)
	a.library.SetDimensions(width, height)
	a.assist.SetDimensions(width, height)
	a.settings.SetDimensions(width, height)
	a.help.SetDimensions(width, height)
}
