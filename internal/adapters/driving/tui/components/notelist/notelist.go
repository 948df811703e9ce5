// Package notelist provides the navigable workspace listing for the TUI.
package notelist

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
	"github.com/marknote-dev/marknote/internal/core/domain"
)

// NoteList displays workspace entries (folders first, then notes) in a
// navigable list.
type NoteList struct {
	entries  []domain.NoteInfo
	root     string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a new note list component.
func New(s *styles.Styles) *NoteList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &NoteList{
		entries:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the note list.
func (n *NoteList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (n *NoteList) Update(msg tea.Msg) (*NoteList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			n.MoveUp()
		case tea.KeyDown:
			n.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			n.MoveUp()
		case "j":
			n.MoveDown()
		}
	}
	return n, nil
}

// View renders the note list.
func (n *NoteList) View() string {
	if len(n.entries) == 0 {
		return n.styles.Muted.Render("No notes")
	}

	lines := make([]string, 0, len(n.entries)+1)

	visibleCount := n.height - 1
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if n.selected >= visibleCount {
		start = n.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(n.entries) {
		end = len(n.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, n.renderEntry(i, &n.entries[i]))
	}

	return strings.Join(lines, "\n")
}

// renderEntry formats a single workspace entry with folder nesting.
func (n *NoteList) renderEntry(index int, entry *domain.NoteInfo) string {
	indicator := "  "
	if index == n.selected {
		indicator = "> "
	}

	indent := strings.Repeat("  ", n.depth(entry.Path))

	label := entry.Title
	if entry.IsDir {
		label += "/"
	}

	maxLen := n.width - len(indent) - 4
	if maxLen < 10 {
		maxLen = 10
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}

	line := indicator + indent + label
	switch {
	case index == n.selected:
		return n.styles.Selected.Render(line)
	case entry.IsDir:
		return n.styles.FolderEntry.Render(line)
	default:
		return n.styles.Normal.Render(line)
	}
}

// depth returns the nesting level of path below the workspace root.
func (n *NoteList) depth(path string) int {
	if n.root == "" {
		return 0
	}
	rel, err := filepath.Rel(n.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator))
}

// SetEntries updates the listing, clamping the selection.
func (n *NoteList) SetEntries(entries []domain.NoteInfo) {
	n.entries = entries
	if n.selected >= len(entries) {
		n.selected = len(entries) - 1
	}
	if n.selected < 0 {
		n.selected = 0
	}
}

// SetRoot sets the workspace root used for nesting display.
func (n *NoteList) SetRoot(root string) {
	n.root = root
}

// Entries returns the current listing.
func (n *NoteList) Entries() []domain.NoteInfo {
	return n.entries
}

// Selected returns the index of the selected entry.
func (n *NoteList) Selected() int {
	return n.selected
}

// SetSelected sets the selected index.
func (n *NoteList) SetSelected(index int) {
	if index >= 0 && index < len(n.entries) {
		n.selected = index
	}
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (n *NoteList) SelectedEntry() *domain.NoteInfo {
	if len(n.entries) == 0 || n.selected < 0 || n.selected >= len(n.entries) {
		return nil
	}
	return &n.entries[n.selected]
}

// MoveUp moves selection up.
func (n *NoteList) MoveUp() {
	if n.selected > 0 {
		n.selected--
	}
}

// MoveDown moves selection down.
func (n *NoteList) MoveDown() {
	if n.selected < len(n.entries)-1 {
		n.selected++
	}
}

// SetDimensions sets the component dimensions.
func (n *NoteList) SetDimensions(width, height int) {
	n.width = width
	n.height = height
}

// Count returns the number of entries.
func (n *NoteList) Count() int {
	return len(n.entries)
}

// IsEmpty returns whether the list is empty.
func (n *NoteList) IsEmpty() bool {
	return len(n.entries) == 0
}
