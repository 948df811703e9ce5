// Package help provides the keybinding help view for the TUI.
package help

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/keymap"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
)

// View renders the full keybinding reference.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int
	height int
	ready  bool
}

// NewView creates a new help view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		width:  80,
		height: 24,
	}
}

// Init initialises the help view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewEditor}
			}
		}
	}
	return v, nil
}

// View renders the help view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Keybindings"))
	b.WriteString("\n\n")

	for _, group := range v.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(v.styles.Subtitle.Render("  " + pad(h.Key, 10)))
			b.WriteString(v.styles.Normal.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
