// Package status provides the editor status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/keymap"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
)

// State represents the current editor state for display.
type State string

const (
	StateReady   State = "ready"
	StateSaved   State = "saved"
	StateWorking State = "working"
	StateError   State = "error"
)

// Bar displays the document title, dirty marker, transient messages, and
// keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	title   string
	dirty   bool
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := s.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the document title, dirty marker, and state message.
func (s *Bar) renderLeft() string {
	title := s.styles.Normal.Render(s.title)
	if s.dirty {
		title += s.styles.Dirty.Render(" ●")
	}

	switch s.state {
	case StateWorking:
		return title + s.styles.Muted.Render("  "+s.messageOr("Working..."))
	case StateError:
		return title + s.styles.Error.Render("  "+s.messageOr("Error"))
	case StateSaved:
		return title + s.styles.Success.Render("  "+s.messageOr("Saved"))
	case StateReady:
		if s.message != "" {
			return title + s.styles.Muted.Render("  "+s.message)
		}
	}
	return title
}

func (s *Bar) messageOr(fallback string) string {
	if s.message != "" {
		return s.message
	}
	return fallback
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetTitle sets the document title.
func (s *Bar) SetTitle(title string) {
	s.title = title
}

// Title returns the document title.
func (s *Bar) Title() string {
	return s.title
}

// SetDirty sets the unsaved-changes marker.
func (s *Bar) SetDirty(dirty bool) {
	s.dirty = dirty
}

// Dirty returns the unsaved-changes marker.
func (s *Bar) Dirty() bool {
	return s.dirty
}

// SetMessage sets a transient message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
