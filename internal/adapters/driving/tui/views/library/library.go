// Package library provides the notes library browser for the TUI.
package library

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/components/notelist"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/components/promptinput"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/keymap"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// recentLimit caps the recent-files section.
const recentLimit = 5

// mode tracks transient input overlays.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeCreate
	modeConfirmDelete
)

// View is the notes library: the workspace tree, a recent-files section,
// filtering, and note creation/deletion.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	list   *notelist.NoteList
	input  *promptinput.PromptInput

	library driving.LibraryService

	mode    mode
	filter  string
	recent  []string
	target  string // pending delete path
	err     error
	flash   string

	width  int
	height int
	ready  bool
}

// NewView creates a new library view.
func NewView(s *styles.Styles, km *keymap.KeyMap, library driving.LibraryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	list := notelist.New(s)
	if library != nil {
		list.SetRoot(library.Root())
	}

	return &View{
		styles:  s,
		keymap:  km,
		list:    list,
		input:   promptinput.New(s, "Name:"),
		library: library,
		width:   80,
		height:  24,
	}
}

// Init loads the listing.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// load returns a command that lists the workspace and recent files.
func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		notes, err := v.library.Notes(v.filter)
		if err != nil {
			return messages.NotesLoaded{Err: err}
		}
		recent, err := v.library.Recent(recentLimit)
		if err != nil {
			recent = nil // recents are best-effort
		}
		return messages.NotesLoaded{Notes: notes, Recent: recent}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.NotesLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.list.SetEntries(msg.Notes)
			v.recent = msg.Recent
		}
		return v, nil

	case messages.LibraryChanged:
		return v, v.load()

	case messages.NoteCreated:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.flash = "Created " + domain.NoteTitle(msg.Path)
		return v, tea.Batch(v.load(), func() tea.Msg {
			return messages.NoteSelected{Path: msg.Path}
		})

	case messages.NoteDeleted:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.flash = "Deleted " + domain.NoteTitle(msg.Path)
		}
		return v, v.load()
	}

	return v, nil
}

// handleKeyMsg processes keyboard input per mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case modeFilter, modeCreate:
		return v.handleInputKeys(msg)
	case modeConfirmDelete:
		return v.handleConfirmKeys(msg)
	case modeBrowse:
	}

	keyStr := msg.String()
	switch {
	case keyStr == "esc":
		if v.filter != "" {
			v.filter = ""
			return v, v.load()
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewEditor}
		}

	case keymap.Matches(keyStr, v.keymap.Filter):
		v.mode = modeFilter
		v.input.SetLabel("Filter:")
		v.input.SetPlaceholder("title contains...")
		v.input.SetValue(v.filter)
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Create):
		v.mode = modeCreate
		v.input.SetLabel("New note:")
		v.input.SetPlaceholder("meeting-notes")
		v.input.SetValue("")
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Delete):
		entry := v.list.SelectedEntry()
		if entry == nil {
			return v, nil
		}
		v.target = entry.Path
		v.mode = modeConfirmDelete
		return v, nil

	case keyStr == "enter":
		entry := v.list.SelectedEntry()
		if entry == nil || entry.IsDir {
			return v, nil
		}
		path := entry.Path
		return v, func() tea.Msg {
			return messages.NoteSelected{Path: path}
		}
	}

	// Digits 1-5 open recent files.
	if len(keyStr) == 1 && keyStr >= "1" && keyStr <= "5" {
		idx := int(keyStr[0] - '1')
		if idx < len(v.recent) {
			path := v.recent[idx]
			return v, func() tea.Msg {
				return messages.NoteSelected{Path: path}
			}
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) handleInputKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = modeBrowse
		v.input.Blur()
		return v, nil

	case "enter":
		value := strings.TrimSpace(v.input.Value())
		mode := v.mode
		v.mode = modeBrowse
		v.input.Blur()

		if mode == modeFilter {
			v.filter = value
			return v, v.load()
		}
		if value == "" {
			return v, nil
		}
		return v, v.createNote(value)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		path := v.target
		v.target = ""
		v.mode = modeBrowse
		return v, func() tea.Msg {
			return messages.NoteDeleted{Path: path, Err: v.library.Delete(path)}
		}
	case "n", "N", "esc":
		v.target = ""
		v.mode = modeBrowse
	}
	return v, nil
}

// createNote creates a note in the selected folder, or the root.
func (v *View) createNote(name string) tea.Cmd {
	dir := ""
	if entry := v.list.SelectedEntry(); entry != nil && entry.IsDir {
		dir = entry.Path
	}
	return func() tea.Msg {
		path, err := v.library.CreateNote(dir, name)
		return messages.NoteCreated{Path: path, Err: err}
	}
}

// View renders the library view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Library"), ""}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	if v.flash != "" {
		sections = append(sections, v.styles.Success.Render(v.flash), "")
	}

	if v.filter != "" {
		sections = append(sections, v.styles.Muted.Render("Filter: "+v.filter), "")
	}

	if len(v.recent) > 0 {
		sections = append(sections, v.styles.Subtitle.Render("Recent"))
		for i, path := range v.recent {
			sections = append(sections, v.styles.Muted.Render(
				"  "+string(rune('1'+i))+". "+domain.NoteTitle(path)))
		}
		sections = append(sections, "")
	}

	sections = append(sections, v.list.View())

	switch v.mode {
	case modeFilter, modeCreate:
		sections = append(sections, "", v.input.View())
	case modeConfirmDelete:
		sections = append(sections, "",
			v.styles.Warning.Render("Delete "+domain.NoteTitle(v.target)+"? [y/n]"))
	case modeBrowse:
		sections = append(sections, "", v.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderHelp() string {
	hints := make([]string, 0, 6)
	for _, b := range v.keymap.LibraryHelp() {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return v.styles.Help.Render(strings.Join(hints, " | "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-12)
	v.input.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Entries returns the current listing.
func (v *View) Entries() []domain.NoteInfo {
	return v.list.Entries()
}

// Recent returns the recent paths on display.
func (v *View) Recent() []string {
	return v.recent
}

// Filter returns the active filter text.
func (v *View) Filter() string {
	return v.filter
}

// SelectedEntry returns the selected listing entry.
func (v *View) SelectedEntry() *domain.NoteInfo {
	return v.list.SelectedEntry()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears transient state and reloads on next Init.
func (v *View) Reset() {
	v.mode = modeBrowse
	v.target = ""
	v.flash = ""
	v.err = nil
	v.input.SetValue("")
	v.input.Blur()
}
