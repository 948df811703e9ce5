package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_SaveBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Save.Keys()
	assert.Contains(t, keys, "ctrl+s")
}

func TestDefaultKeyMap_LibraryBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Library.Keys()
	assert.Contains(t, keys, "ctrl+o")
}

func TestDefaultKeyMap_AssistBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Assist.Keys()
	assert.Contains(t, keys, "ctrl+j")
}

func TestDefaultKeyMap_TogglePreviewBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.TogglePreview.Keys()
	assert.Contains(t, keys, "ctrl+p")
}

func TestDefaultKeyMap_VisualSelectBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.VisualSelect.Keys()
	assert.Contains(t, keys, "ctrl+v")
}

func TestDefaultKeyMap_UpBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Up.Keys()
	assert.Contains(t, keys, "up")
	assert.Contains(t, keys, "k")
}

func TestDefaultKeyMap_DownBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Down.Keys()
	assert.Contains(t, keys, "down")
	assert.Contains(t, keys, "j")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 4)
	assert.Equal(t, km.Save, bindings[0])
	assert.Equal(t, km.Library, bindings[1])
	assert.Equal(t, km.Assist, bindings[2])
	assert.Equal(t, km.Help, bindings[3])
}

func TestLibraryHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.LibraryHelp()

	assert.Len(t, bindings, 6)
	assert.Equal(t, km.Up, bindings[0])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 3)    // 3 groups
	assert.Len(t, bindings[0], 4) // Save, NewNote, Library, Export
	assert.Len(t, bindings[1], 4) // Assist, TogglePreview, InsertToC, VisualSelect
	assert.Len(t, bindings[2], 4) // Settings, Help, Back, Quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("ctrl+s", km.Save))
	assert.True(t, Matches("/", km.Filter))
	assert.True(t, Matches("up", km.Up))
	assert.True(t, Matches("k", km.Up))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("ctrl+x", km.Save))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Save", km.Save},
		{"NewNote", km.NewNote},
		{"Library", km.Library},
		{"Assist", km.Assist},
		{"Settings", km.Settings},
		{"TogglePreview", km.TogglePreview},
		{"Export", km.Export},
		{"InsertToC", km.InsertToC},
		{"VisualSelect", km.VisualSelect},
		{"Filter", km.Filter},
		{"Create", km.Create},
		{"Delete", km.Delete},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
