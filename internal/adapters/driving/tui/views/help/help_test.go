package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
)

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Nil(t, v.Init())
}

func TestView_RendersAllBindings(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)

	out := v.View()

	assert.Contains(t, out, "Keybindings")
	assert.Contains(t, out, "ctrl+s")
	assert.Contains(t, out, "save")
	assert.Contains(t, out, "ctrl+j")
	assert.Contains(t, out, "assistant")
	assert.Contains(t, out, "ctrl+p")
	assert.Contains(t, out, "preview")
}

func TestView_DismissKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		v := NewView(nil, nil)

		_, cmd := v.Update(key)
		require.NotNil(t, cmd, "key %s should dismiss", key.String())

		msg, ok := cmd().(messages.ViewChanged)
		require.True(t, ok)
		assert.Equal(t, messages.ViewEditor, msg.View)
	}
}

func TestView_OtherKeysIgnored(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Nil(t, cmd)
}
