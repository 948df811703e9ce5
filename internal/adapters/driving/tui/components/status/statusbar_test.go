package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/keymap"
	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.False(t, bar.Dirty())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.Init()

	assert.Nil(t, cmd)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := bar.Update(msg)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateWorking)

	assert.Equal(t, StateWorking, bar.State())
}

func TestStatusBar_SetTitle(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetTitle("Meeting Notes")

	assert.Equal(t, "Meeting Notes", bar.Title())
}

func TestStatusBar_SetDirty(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetDirty(true)

	assert.True(t, bar.Dirty())
}

func TestStatusBar_SetMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetMessage("test message")

	assert.Equal(t, "test message", bar.Message())
}

func TestStatusBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(120)

	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, 80, bar.Width()) // Default
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("error message")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}

func TestStatusBar_View_Title(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetTitle("Plan")

	view := bar.View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Plan")
}

func TestStatusBar_View_DirtyMarker(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetTitle("Plan")
	bar.SetDirty(true)

	view := bar.View()

	assert.Contains(t, view, "●")
}

func TestStatusBar_View_Saved(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateSaved)

	view := bar.View()

	assert.Contains(t, view, "Saved")
}

func TestStatusBar_View_Working(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateWorking)

	view := bar.View()

	assert.Contains(t, view, "Working")
}

func TestStatusBar_View_ErrorWithMessage(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("save failed")

	view := bar.View()

	assert.Contains(t, view, "save failed")
}

func TestStatusBar_View_ShowsKeybindings(t *testing.T) {
	bar := NewBar(nil, nil)

	view := bar.View()

	// Should show the save keybinding hint
	assert.Contains(t, view, "save")
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("ready"), StateReady)
	assert.Equal(t, State("saved"), StateSaved)
	assert.Equal(t, State("working"), StateWorking)
	assert.Equal(t, State("error"), StateError)
}
