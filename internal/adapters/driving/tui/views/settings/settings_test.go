package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/adapters/driving/tui/messages"
	"github.com/marknote-dev/marknote/internal/core/domain"
)

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
	SaveErr  error
	Saves    int
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	settings := m.Settings
	return &settings, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Settings = *settings
	return nil
}

func newTestView() (*View, *MockSettingsService) {
	svc := &MockSettingsService{Settings: domain.DefaultAppSettings()}
	v := NewView(nil, svc)
	v.SetDimensions(80, 24)
	return v, svc
}

// loaded runs the load command and applies the result.
func loaded(t *testing.T, v *View) *View {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

// moveTo moves the overview selection to row.
func moveTo(v *View, row int) *View {
	for v.Selected() < row {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	return v
}

// save runs the save command and feeds the result back.
func save(t *testing.T, v *View, cmd tea.Cmd) *View {
	t.Helper()
	require.NotNil(t, cmd)
	v, reload := v.Update(cmd())
	if reload != nil {
		v, _ = v.Update(reload())
	}
	return v
}

func TestView_LoadsSettings(t *testing.T) {
	v, _ := newTestView()

	v = loaded(t, v)

	require.NotNil(t, v.Settings())
	assert.Equal(t, domain.AIProviderGemini, v.Settings().LLM.Provider)
}

func TestView_Navigation(t *testing.T) {
	v, _ := newTestView()
	v = loaded(t, v)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, v.Selected())
}

func TestView_ToggleAutoSave(t *testing.T) {
	v, svc := newTestView()
	v = loaded(t, v)
	require.False(t, svc.Settings.Editor.AutoSaveEnabled)

	v = moveTo(v, rowAutoSave)
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = save(t, v, cmd)

	assert.True(t, svc.Settings.Editor.AutoSaveEnabled)
	assert.Equal(t, 1, svc.Saves)
}

func TestView_ToggleSyncScroll(t *testing.T) {
	v, svc := newTestView()
	v = loaded(t, v)
	require.True(t, svc.Settings.Editor.SyncScroll)

	v = moveTo(v, rowSyncScroll)
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = save(t, v, cmd)

	assert.False(t, svc.Settings.Editor.SyncScroll)
}

func TestView_EditInterval(t *testing.T) {
	t.Run("valid interval saves", func(t *testing.T) {
		v, svc := newTestView()
		v = loaded(t, v)

		v = moveTo(v, rowInterval)
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.Equal(t, SectionInterval, v.CurrentSection())

		v.textInput.SetValue("90")
		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		v = save(t, v, cmd)

		assert.Equal(t, 90, svc.Settings.Editor.AutoSaveIntervalSecs)
		assert.Equal(t, SectionOverview, v.CurrentSection())
	})

	t.Run("non-positive interval is rejected", func(t *testing.T) {
		v, svc := newTestView()
		v = loaded(t, v)

		v = moveTo(v, rowInterval)
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

		v.textInput.SetValue("0")
		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		assert.Error(t, v.Err())
		assert.Equal(t, 30, svc.Settings.Editor.AutoSaveIntervalSecs)
	})
}

func TestView_EditModel(t *testing.T) {
	v, svc := newTestView()
	v = loaded(t, v)

	v = moveTo(v, rowModel)
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionModel, v.CurrentSection())

	v.textInput.SetValue("gemini-1.5-pro")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = save(t, v, cmd)

	assert.Equal(t, "gemini-1.5-pro", svc.Settings.LLM.Model)
}

func TestView_EditNotesFolder(t *testing.T) {
	v, svc := newTestView()
	v = loaded(t, v)

	v = moveTo(v, rowFolder)
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionFolder, v.CurrentSection())

	v.textInput.SetValue("~/docs/notes")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = save(t, v, cmd)

	assert.Equal(t, "~/docs/notes", svc.Settings.Notes.Folder)
}

func TestView_ChangeProvider(t *testing.T) {
	t.Run("cloud provider asks for an API key", func(t *testing.T) {
		v, _ := newTestView()
		v = loaded(t, v)

		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter}) // rowProvider
		require.Equal(t, SectionProvider, v.CurrentSection())

		// Selecting a keyless cloud provider moves focus to the key input.
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown}) // openai
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Equal(t, SectionProvider, v.CurrentSection())
		assert.Equal(t, 1, v.focusedField)
	})

	t.Run("provider with key saves and clears the model", func(t *testing.T) {
		v, svc := newTestView()
		svc.Settings.LLM.Model = "gemini-1.5-pro"
		v = loaded(t, v)

		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown}) // openai
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter}) // focuses key input
		v.apiKeyInput.SetValue("sk-test")
		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		v = save(t, v, cmd)

		assert.Equal(t, domain.AIProviderOpenAI, svc.Settings.LLM.Provider)
		assert.Equal(t, "sk-test", svc.Settings.LLM.APIKey)
		assert.Empty(t, svc.Settings.LLM.Model) // provider default
		assert.Equal(t, SectionOverview, v.CurrentSection())
	})

	t.Run("local provider needs no key", func(t *testing.T) {
		v, svc := newTestView()
		v = loaded(t, v)

		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		for range domain.AllProviders()[:3] {
			v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown}) // down to ollama
		}
		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		v = save(t, v, cmd)

		assert.Equal(t, domain.AIProviderOllama, svc.Settings.LLM.Provider)
	})

	t.Run("blank key keeps the stored key", func(t *testing.T) {
		v, svc := newTestView()
		svc.Settings.LLM.APIKey = "stored-key"
		v = loaded(t, v)

		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		// Gemini is current and already has a key; enter applies directly.
		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
		v = save(t, v, cmd)

		assert.Equal(t, "stored-key", svc.Settings.LLM.APIKey)
	})
}

func TestView_SaveError(t *testing.T) {
	v, svc := newTestView()
	v = loaded(t, v)
	svc.SaveErr = errors.New("config dir not writable")

	v = moveTo(v, rowAutoSave)
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Error(t, v.Err())
}

func TestView_EscNavigation(t *testing.T) {
	t.Run("from a section returns to the overview", func(t *testing.T) {
		v, _ := newTestView()
		v = loaded(t, v)

		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter}) // provider section
		require.Equal(t, SectionProvider, v.CurrentSection())

		v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, SectionOverview, v.CurrentSection())
		assert.Nil(t, cmd)
	})

	t.Run("from the overview returns to the editor", func(t *testing.T) {
		v, _ := newTestView()
		v = loaded(t, v)

		_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)

		msg, ok := cmd().(messages.ViewChanged)
		require.True(t, ok)
		assert.Equal(t, messages.ViewEditor, msg.View)
	})
}

func TestView_RendersProviderStatus(t *testing.T) {
	t.Run("unconfigured shows a warning", func(t *testing.T) {
		v, _ := newTestView()
		v = loaded(t, v)
		assert.Contains(t, v.View(), "[needs API key]")
	})

	t.Run("configured shows the badge", func(t *testing.T) {
		v, svc := newTestView()
		svc.Settings.LLM.APIKey = "key"
		v = loaded(t, v)
		assert.Contains(t, v.View(), "[configured]")
	})
}
