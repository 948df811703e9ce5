// Package editor provides the split editor/preview view for the TUI.
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/components/promptinput"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/components/status"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/keymap"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// Layout selects which panes are visible.
type Layout int

const (
	// LayoutSplit shows the editor and preview side by side.
	LayoutSplit Layout = iota
	// LayoutEdit shows only the editor.
	LayoutEdit
	// LayoutPreview shows only the rendered preview.
	LayoutPreview
)

// inputMode tracks a transient path prompt over the editor.
type inputMode int

const (
	inputNone inputMode = iota
	inputSaveAs
	inputExport
)

// tocDepth is the heading depth for inserted tables of contents.
const tocDepth = 3

// View is the editor view: a Markdown text area, a rendered preview, and
// a status bar. Line selection feeds the AI assistant.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	textarea  textarea.Model
	preview   viewport.Model
	statusbar *status.Bar
	pathInput *promptinput.PromptInput

	document driving.DocumentService

	layout     Layout
	syncScroll bool
	mode       inputMode

	// anchorLine is the selection anchor (-1 = no selection). The
	// selection spans whole lines between the anchor and the cursor.
	anchorLine int

	// Preview cache, invalidated on content or width change.
	rendered     string
	renderedFor  string
	renderedWide int

	width  int
	height int
	ready  bool
}

// NewView creates a new editor view.
func NewView(s *styles.Styles, km *keymap.KeyMap, document driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ta := textarea.New()
	ta.Placeholder = "Start writing..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.Focus()

	vp := viewport.New(40, 20)

	return &View{
		styles:     s,
		keymap:     km,
		textarea:   ta,
		preview:    vp,
		statusbar:  status.NewBar(s, km),
		pathInput:  promptinput.New(s, "Path:"),
		document:   document,
		layout:     LayoutSplit,
		syncScroll: true,
		anchorLine: -1,
		width:      80,
		height:     24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentSaved:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetState(status.StateSaved)
			v.statusbar.SetMessage("Saved " + msg.Path)
		}
		v.refreshStatus()
		return v, nil

	case messages.AutoSaved:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		} else if msg.Saved {
			v.statusbar.SetState(status.StateSaved)
			v.statusbar.SetMessage("Auto-saved")
		}
		v.refreshStatus()
		return v, nil

	case messages.ExportCompleted:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetState(status.StateSaved)
			v.statusbar.SetMessage("Exported " + msg.Path)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.textarea, cmd = v.textarea.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.mode != inputNone {
		return v.handlePathInputKey(msg)
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.VisualSelect):
		v.toggleSelection()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.InsertToC):
		v.InsertAtCursor(v.document.TableOfContents(tocDepth))
		return v, nil

	case keyStr == "esc":
		if v.anchorLine >= 0 {
			v.anchorLine = -1
			return v, nil
		}
	}

	// Preview-only layout: scroll the preview instead of editing.
	if v.layout == LayoutPreview {
		var cmd tea.Cmd
		v.preview, cmd = v.preview.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.textarea, cmd = v.textarea.Update(msg)
	v.document.SetContent(v.textarea.Value())
	v.refreshStatus()
	v.syncPreviewScroll()
	return v, cmd
}

// handlePathInputKey processes keys while a path prompt is open.
func (v *View) handlePathInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.closePathInput()
		return v, nil

	case "enter":
		path := strings.TrimSpace(v.pathInput.Value())
		if path == "" {
			return v, nil
		}
		mode := v.mode
		v.closePathInput()
		if mode == inputSaveAs {
			return v, v.saveAs(path)
		}
		return v, v.export(path)
	}

	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

func (v *View) closePathInput() {
	v.mode = inputNone
	v.pathInput.SetValue("")
	v.pathInput.Blur()
	v.textarea.Focus()
}

// Save writes the document, prompting for a path when it has none.
func (v *View) Save() tea.Cmd {
	doc := v.document.Current()
	if !doc.HasPath() {
		return v.StartSaveAs()
	}
	return func() tea.Msg {
		err := v.document.Save()
		return messages.DocumentSaved{Path: v.document.Current().Path, Err: err}
	}
}

// StartSaveAs opens the save-as path prompt.
func (v *View) StartSaveAs() tea.Cmd {
	v.mode = inputSaveAs
	v.pathInput.SetLabel("Save as:")
	v.pathInput.SetPlaceholder("notes/my-note.md")
	v.textarea.Blur()
	return v.pathInput.Focus()
}

// StartExport opens the HTML export path prompt.
func (v *View) StartExport() tea.Cmd {
	v.mode = inputExport
	v.pathInput.SetLabel("Export to:")
	v.pathInput.SetPlaceholder("export/my-note.html")
	v.textarea.Blur()
	return v.pathInput.Focus()
}

func (v *View) saveAs(path string) tea.Cmd {
	return func() tea.Msg {
		saved, err := v.document.SaveAs(path)
		return messages.DocumentSaved{Path: saved, Err: err}
	}
}

func (v *View) export(path string) tea.Cmd {
	return func() tea.Msg {
		err := v.document.ExportHTML(path)
		return messages.ExportCompleted{Path: path, Err: err}
	}
}

// toggleSelection anchors or clears the line selection at the cursor.
func (v *View) toggleSelection() {
	if v.anchorLine >= 0 {
		v.anchorLine = -1
		return
	}
	v.anchorLine = v.textarea.Line()
}

// HasSelection reports whether a line selection is active.
func (v *View) HasSelection() bool {
	return v.anchorLine >= 0
}

// SelectedText returns the selected lines, or "" without a selection.
func (v *View) SelectedText() string {
	if v.anchorLine < 0 {
		return ""
	}
	lines := strings.Split(v.textarea.Value(), "\n")
	start, end := v.selectionBounds(len(lines))
	return strings.Join(lines[start:end+1], "\n")
}

// selectionBounds returns the inclusive selected line range, clamped.
func (v *View) selectionBounds(lineCount int) (int, int) {
	start, end := v.anchorLine, v.textarea.Line()
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end >= lineCount {
		end = lineCount - 1
	}
	return start, end
}

// SyncFromDocument replaces the buffer with the session document.
func (v *View) SyncFromDocument() {
	v.textarea.SetValue(v.document.Current().Content)
	v.anchorLine = -1
	v.refreshStatus()
}

// InsertAtCursor inserts text at the cursor position.
func (v *View) InsertAtCursor(text string) {
	v.textarea.InsertString(text)
	v.document.SetContent(v.textarea.Value())
	v.refreshStatus()
}

// ReplaceSelection swaps the selected lines for text and clears the
// selection. Without a selection the text is inserted at the cursor.
func (v *View) ReplaceSelection(text string) {
	if v.anchorLine < 0 {
		v.InsertAtCursor(text)
		return
	}
	lines := strings.Split(v.textarea.Value(), "\n")
	start, end := v.selectionBounds(len(lines))

	var replaced []string
	replaced = append(replaced, lines[:start]...)
	replaced = append(replaced, strings.Split(text, "\n")...)
	replaced = append(replaced, lines[end+1:]...)

	v.textarea.SetValue(strings.Join(replaced, "\n"))
	v.anchorLine = -1
	v.document.SetContent(v.textarea.Value())
	v.refreshStatus()
}

// ReplaceAll swaps the whole buffer for text.
func (v *View) ReplaceAll(text string) {
	v.document.SetContent(text)
	v.SyncFromDocument()
}

// AppendText appends text to the end of the document, blank-line
// separated, and syncs the buffer.
func (v *View) AppendText(text string) {
	doc := v.document.Current()
	doc.AppendResult(text)
	v.document.SetContent(doc.Content)
	v.SyncFromDocument()
}

// ToggleLayout cycles split, edit-only, and preview-only layouts.
func (v *View) ToggleLayout() {
	switch v.layout {
	case LayoutSplit:
		v.layout = LayoutEdit
	case LayoutEdit:
		v.layout = LayoutPreview
		v.textarea.Blur()
	case LayoutPreview:
		v.layout = LayoutSplit
		v.textarea.Focus()
	}
	v.resize()
}

// Layout returns the current layout.
func (v *View) Layout() Layout {
	return v.layout
}

// SetSyncScroll enables or disables preview scroll syncing.
func (v *View) SetSyncScroll(enabled bool) {
	v.syncScroll = enabled
}

// refreshStatus mirrors the session document into the status bar.
func (v *View) refreshStatus() {
	doc := v.document.Current()
	v.statusbar.SetTitle(doc.Title())
	v.statusbar.SetDirty(doc.Dirty())
}

// syncPreviewScroll maps the cursor line onto the preview offset.
func (v *View) syncPreviewScroll() {
	if !v.syncScroll {
		return
	}
	total := v.textarea.LineCount()
	if total <= 1 {
		v.preview.SetYOffset(0)
		return
	}
	maxOffset := v.preview.TotalLineCount() - v.preview.Height
	if maxOffset <= 0 {
		return
	}
	ratio := float64(v.textarea.Line()) / float64(total-1)
	v.preview.SetYOffset(int(ratio * float64(maxOffset)))
}

// renderPreview renders the buffer to styled terminal Markdown, cached
// per content and width.
func (v *View) renderPreview() string {
	content := v.textarea.Value()
	if content == v.renderedFor && v.preview.Width == v.renderedWide {
		return v.rendered
	}

	rendered := content
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(v.preview.Width-2),
	)
	if err == nil {
		if out, rerr := r.Render(content); rerr == nil {
			rendered = out
		}
	}

	v.rendered = rendered
	v.renderedFor = content
	v.renderedWide = v.preview.Width
	return rendered
}

// View renders the editor view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var body string
	switch v.layout {
	case LayoutEdit:
		body = v.textarea.View()
	case LayoutPreview:
		v.preview.SetContent(v.renderPreview())
		body = v.styles.PreviewPane.Render(v.preview.View())
	case LayoutSplit:
		v.preview.SetContent(v.renderPreview())
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			v.textarea.View(),
			v.styles.PreviewPane.Render(v.preview.View()),
		)
	}

	sections := []string{body}

	if v.anchorLine >= 0 {
		start, end := v.selectionBounds(v.textarea.LineCount())
		hint := v.styles.Warning.Render(
			fmt.Sprintf("-- SELECT -- lines %d-%d (esc to clear)", start+1, end+1))
		sections = append(sections, hint)
	}

	if v.mode != inputNone {
		sections = append(sections, v.pathInput.View())
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.resize()
}

// resize allocates space to the panes for the current layout.
func (v *View) resize() {
	bodyHeight := v.height - 3 // status bar, hints
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	switch v.layout {
	case LayoutSplit:
		half := v.width / 2
		v.textarea.SetWidth(half)
		v.textarea.SetHeight(bodyHeight)
		v.preview.Width = v.width - half - 2
		v.preview.Height = bodyHeight
	case LayoutEdit:
		v.textarea.SetWidth(v.width)
		v.textarea.SetHeight(bodyHeight)
	case LayoutPreview:
		v.preview.Width = v.width - 2
		v.preview.Height = bodyHeight
	}

	v.statusbar.SetWidth(v.width)
	v.pathInput.SetWidth(v.width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Content returns the current buffer text.
func (v *View) Content() string {
	return v.textarea.Value()
}

// StatusMessage returns the current status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// PathInputOpen reports whether a path prompt is active.
func (v *View) PathInputOpen() bool {
	return v.mode != inputNone
}

// Reset syncs the buffer from the session document.
func (v *View) Reset() {
	v.closePathInput()
	v.statusbar.Clear()
	v.SyncFromDocument()
}
