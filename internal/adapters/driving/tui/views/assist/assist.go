// Package assist provides the AI assistant panel for the TUI.
package assist

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/components/promptinput"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// state tracks the panel's dispatch lifecycle.
type state int

const (
	// statePick shows the action list.
	statePick state = iota
	// statePrompt collects prompt text or summary options.
	statePrompt
	// stateWorking waits for the remote call.
	stateWorking
	// stateDone shows a successful result with follow-up controls.
	stateDone
	// stateFailed shows a tagged error with no follow-up controls.
	stateFailed
)

// View is the AI assistant panel. It walks pick -> prompt -> working ->
// done/failed; a new dispatch supersedes any in-flight request, whose
// late result is dropped on arrival.
type View struct {
	styles *styles.Styles
	prompt *promptinput.PromptInput

	assistant driving.AssistantService
	library   driving.LibraryService
	clipboard driven.Clipboard
	ctx       context.Context

	state   state
	actions []domain.ActionType
	cursor  int

	action  domain.ActionType
	summary domain.SummaryOptions

	// pendingID is the ID of the in-flight request; results carrying any
	// other ID are stale and ignored.
	pendingID uint64

	result     domain.AssistResult
	followUps  []domain.FollowUp
	followCur  int
	inputErr   error
	flash      string
	selection  string
	document   string

	width  int
	height int
	ready  bool
}

// NewView creates a new assistant panel.
func NewView(
	s *styles.Styles,
	assistant driving.AssistantService,
	library driving.LibraryService,
	clipboard driven.Clipboard,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:    s,
		prompt:    promptinput.New(s, "Prompt:"),
		assistant: assistant,
		library:   library,
		clipboard: clipboard,
		ctx:       context.Background(),
		state:     statePick,
		actions:   domain.AllActions(),
		summary:   domain.DefaultSummaryOptions(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for remote calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetInput provides the editor's selection and document text. The app
// calls this before switching to the panel.
func (v *View) SetInput(selection, document string) {
	v.selection = selection
	v.document = document
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the assistant panel.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AssistCompleted:
		v.handleCompleted(msg.Result)
		return v, nil
	}

	return v, nil
}

// handleCompleted applies a finished request, dropping stale results.
func (v *View) handleCompleted(result domain.AssistResult) {
	if result.RequestID != v.pendingID {
		return // superseded or cancelled
	}
	v.pendingID = 0
	v.result = result

	if result.Failed() {
		v.state = stateFailed
		v.followUps = nil
		return
	}

	v.state = stateDone
	spec, _ := result.Action.Spec()
	v.followUps = spec.FollowUps
	v.followCur = 0
}

// handleKeyMsg processes keyboard input per state.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.state {
	case statePick:
		return v.handlePickKeys(msg)
	case statePrompt:
		return v.handlePromptKeys(msg)
	case stateWorking:
		if msg.String() == "esc" {
			v.pendingID = 0 // drop the in-flight result when it lands
			v.state = statePick
		}
		return v, nil
	case stateDone:
		return v.handleDoneKeys(msg)
	case stateFailed:
		switch msg.String() {
		case "esc", "enter":
			v.state = statePick
			v.inputErr = nil
		}
		return v, nil
	}
	return v, nil
}

func (v *View) handlePickKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewEditor}
		}
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.actions)-1 {
			v.cursor++
		}
	case "enter":
		return v.pickAction(v.actions[v.cursor])
	}
	return v, nil
}

// pickAction moves to the prompt state or dispatches directly.
func (v *View) pickAction(action domain.ActionType) (*View, tea.Cmd) {
	v.action = action
	v.inputErr = nil
	v.flash = ""

	spec, ok := action.Spec()
	if !ok {
		return v, nil
	}

	if spec.NeedsPrompt || action == domain.ActionSummarizeAdvanced {
		v.state = statePrompt
		v.summary = domain.DefaultSummaryOptions()
		v.prompt.SetValue("")
		v.prompt.SetPlaceholder(spec.Placeholder)
		return v, v.prompt.Focus()
	}

	return v.dispatch()
}

func (v *View) handlePromptKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.state = statePick
		v.prompt.Blur()
		v.inputErr = nil
		return v, nil

	case "enter":
		return v.dispatch()
	}

	if v.action == domain.ActionSummarizeAdvanced {
		switch msg.String() {
		case "ctrl+l":
			v.summary.Length = nextLength(v.summary.Length)
			return v, nil
		case "ctrl+y":
			if v.summary.Style == domain.StyleParagraph {
				v.summary.Style = domain.StyleBullets
			} else {
				v.summary.Style = domain.StyleParagraph
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func nextLength(l domain.SummaryLength) domain.SummaryLength {
	switch l {
	case domain.SummaryShort:
		return domain.SummaryMedium
	case domain.SummaryMedium:
		return domain.SummaryLong
	default:
		return domain.SummaryShort
	}
}

// dispatch validates and fires the current action. Validation failures
// stay in the panel; nothing is sent and no request ID is consumed.
func (v *View) dispatch() (*View, tea.Cmd) {
	input := driving.AssistInput{
		Prompt:    v.prompt.Value(),
		Selection: v.selection,
		Document:  v.document,
		Summary:   v.summary,
	}

	if spec, ok := v.action.Spec(); ok && spec.UsesNoteTitles && v.library != nil {
		titles, err := v.library.Titles()
		if err == nil {
			input.NoteTitles = titles
		}
	}

	req, err := v.assistant.Prepare(v.action, input)
	if err != nil {
		v.inputErr = err
		return v, nil
	}

	v.inputErr = nil
	v.prompt.Blur()
	v.state = stateWorking
	v.pendingID = req.ID

	return v, func() tea.Msg {
		return messages.AssistCompleted{Result: v.assistant.Execute(v.ctx, req)}
	}
}

func (v *View) handleDoneKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.state = statePick
		v.flash = ""
		return v, nil
	case "left", "h":
		if v.followCur > 0 {
			v.followCur--
		}
		return v, nil
	case "right", "l", "tab":
		if v.followCur < len(v.followUps)-1 {
			v.followCur++
		}
		return v, nil
	case "enter":
		if len(v.followUps) == 0 {
			return v, nil
		}
		return v.applyFollowUp(v.followUps[v.followCur])
	}
	return v, nil
}

// applyFollowUp runs the chosen follow-up control. Copy stays in the
// panel; the editing controls hand the result to the editor.
func (v *View) applyFollowUp(f domain.FollowUp) (*View, tea.Cmd) {
	if f == domain.FollowUpCopy {
		if v.clipboard == nil {
			v.flash = "Clipboard not available"
			return v, nil
		}
		if err := v.clipboard.WriteAll(v.result.Text); err != nil {
			v.flash = "Copy: " + err.Error()
		} else {
			v.flash = "Copied to clipboard"
		}
		return v, nil
	}

	result := v.result
	return v, func() tea.Msg {
		return messages.FollowUpRequested{
			FollowUp:      f,
			Text:          result.Text,
			FromSelection: result.FromSelection,
		}
	}
}

// View renders the assistant panel.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("AI Assistant"), ""}

	if !v.assistant.Enabled() {
		sections = append(sections,
			v.styles.Warning.Render("No AI provider configured."),
			v.styles.Muted.Render("Set a provider and API key in Settings (ctrl+g)."),
		)
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	switch v.state {
	case statePick:
		sections = append(sections, v.renderPick()...)
	case statePrompt:
		sections = append(sections, v.renderPrompt()...)
	case stateWorking:
		sections = append(sections,
			v.styles.Muted.Render(fmt.Sprintf("%s...", v.action.Description())),
			"",
			v.styles.Help.Render("[esc] cancel"),
		)
	case stateDone:
		sections = append(sections, v.renderResult()...)
	case stateFailed:
		sections = append(sections,
			v.styles.Error.Render(domain.TagError(v.result.Err)),
			"",
			v.styles.Help.Render("[esc] back"),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderPick() []string {
	lines := make([]string, 0, len(v.actions)+4)
	for i, action := range v.actions {
		indicator := "  "
		line := indicator + action.Description()
		if i == v.cursor {
			line = "> " + action.Description()
			lines = append(lines, v.styles.Selected.Render(line))
		} else {
			lines = append(lines, v.styles.Normal.Render(line))
		}
	}

	if v.inputErr != nil {
		lines = append(lines, "", v.styles.Error.Render(v.inputErr.Error()))
	}
	if v.selection != "" {
		lines = append(lines, "", v.styles.Muted.Render("Selection active"))
	}
	lines = append(lines, "", v.styles.Help.Render("[j/k] navigate  [enter] run  [esc] back"))
	return lines
}

func (v *View) renderPrompt() []string {
	lines := []string{
		v.styles.Subtitle.Render(v.action.Description()),
		"",
		v.prompt.View(),
	}

	if v.action == domain.ActionSummarizeAdvanced {
		lines = append(lines, "",
			v.styles.Normal.Render(fmt.Sprintf("Length: %s (%s)", v.summary.Length, v.summary.Length.Sentences())),
			v.styles.Normal.Render(fmt.Sprintf("Style:  %s", v.summary.Style)),
			"",
			v.styles.Help.Render("[ctrl+l] length  [ctrl+y] style  [enter] run  [esc] back"),
		)
	} else {
		lines = append(lines, "", v.styles.Help.Render("[enter] run  [esc] back"))
	}

	if v.inputErr != nil {
		lines = append(lines, "", v.styles.Error.Render(v.inputErr.Error()))
	}
	return lines
}

func (v *View) renderResult() []string {
	resultBox := v.styles.Border.
		Width(v.width - 4).
		Padding(0, 1).
		Render(clampLines(v.result.Text, v.height-10))

	lines := []string{
		v.styles.Subtitle.Render(v.result.Action.Description()),
		"",
		resultBox,
		"",
		v.renderFollowUps(),
	}

	if v.flash != "" {
		lines = append(lines, "", v.styles.Success.Render(v.flash))
	}
	lines = append(lines, "", v.styles.Help.Render("[h/l] choose  [enter] apply  [esc] back"))
	return lines
}

func (v *View) renderFollowUps() string {
	if len(v.followUps) == 0 {
		return v.styles.Muted.Render("No follow-up actions")
	}

	parts := make([]string, 0, len(v.followUps))
	for i, f := range v.followUps {
		label := followUpLabel(f)
		if i == v.followCur {
			parts = append(parts, v.styles.Selected.Render(" "+label+" "))
		} else {
			parts = append(parts, v.styles.Normal.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func followUpLabel(f domain.FollowUp) string {
	switch f {
	case domain.FollowUpCopy:
		return "Copy"
	case domain.FollowUpInsert:
		return "Insert"
	case domain.FollowUpReplace:
		return "Replace"
	case domain.FollowUpReplaceDocument:
		return "Replace Document"
	default:
		return string(f)
	}
}

// clampLines trims text to at most max lines for the result box.
func clampLines(text string, max int) string {
	if max < 3 {
		max = 3
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= max {
		return text
	}
	return strings.Join(lines[:max], "\n") + "\n..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.prompt.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// State accessors for tests.

// Picking reports whether the action list is showing.
func (v *View) Picking() bool { return v.state == statePick }

// Prompting reports whether the prompt input is showing.
func (v *View) Prompting() bool { return v.state == statePrompt }

// Working reports whether a request is in flight.
func (v *View) Working() bool { return v.state == stateWorking }

// Done reports whether a successful result is showing.
func (v *View) Done() bool { return v.state == stateDone }

// FailedState reports whether a failed result is showing.
func (v *View) FailedState() bool { return v.state == stateFailed }

// Result returns the last applied result.
func (v *View) Result() domain.AssistResult { return v.result }

// FollowUps returns the offered follow-up controls.
func (v *View) FollowUps() []domain.FollowUp { return v.followUps }

// InputErr returns the current validation error.
func (v *View) InputErr() error { return v.inputErr }

// PendingID returns the in-flight request ID (0 = none).
func (v *View) PendingID() uint64 { return v.pendingID }

// Cursor returns the action list cursor.
func (v *View) Cursor() int { return v.cursor }

// SetSummaryOptions overrides the advanced summary options.
func (v *View) SetSummaryOptions(opts domain.SummaryOptions) {
	v.summary = opts
}

// Reset returns the panel to the action list.
func (v *View) Reset() {
	v.state = statePick
	v.cursor = 0
	v.pendingID = 0
	v.inputErr = nil
	v.flash = ""
	v.result = domain.AssistResult{}
	v.followUps = nil
	v.followCur = 0
	v.prompt.SetValue("")
	v.prompt.Blur()
	v.summary = domain.DefaultSummaryOptions()
}
