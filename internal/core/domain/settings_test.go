package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider(t *testing.T) {
	t.Run("validity", func(t *testing.T) {
		for _, p := range AllProviders() {
			assert.True(t, p.IsValid(), p.String())
		}
		assert.False(t, AIProvider("bard").IsValid())
	})

	t.Run("api key requirements", func(t *testing.T) {
		assert.True(t, AIProviderGemini.RequiresAPIKey())
		assert.True(t, AIProviderOpenAI.RequiresAPIKey())
		assert.True(t, AIProviderAnthropic.RequiresAPIKey())
		assert.False(t, AIProviderOllama.RequiresAPIKey())
	})

	t.Run("locality", func(t *testing.T) {
		assert.True(t, AIProviderOllama.IsLocal())
		assert.False(t, AIProviderGemini.IsLocal())
	})

	t.Run("descriptions", func(t *testing.T) {
		for _, p := range AllProviders() {
			assert.NotEqual(t, unknownDescription, p.Description())
		}
		assert.Equal(t, unknownDescription, AIProvider("bard").Description())
	})
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	t.Run("cloud provider without key is not configured", func(t *testing.T) {
		s := LLMSettings{Provider: AIProviderGemini}
		assert.False(t, s.IsConfigured())
	})

	t.Run("cloud provider with key is configured", func(t *testing.T) {
		s := LLMSettings{Provider: AIProviderGemini, APIKey: "k"}
		assert.True(t, s.IsConfigured())
	})

	t.Run("local provider needs no key", func(t *testing.T) {
		s := LLMSettings{Provider: AIProviderOllama}
		assert.True(t, s.IsConfigured())
	})

	t.Run("invalid provider is never configured", func(t *testing.T) {
		s := LLMSettings{Provider: AIProvider("bard"), APIKey: "k"}
		assert.False(t, s.IsConfigured())
	})
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, AIProviderGemini, settings.LLM.Provider)
	assert.False(t, settings.LLM.IsConfigured(), "AI must start disabled until a key is supplied")
	assert.False(t, settings.Editor.AutoSaveEnabled)
	assert.Equal(t, 30, settings.Editor.AutoSaveIntervalSecs)
	assert.True(t, settings.Editor.SyncScroll)
}

func TestDefaultModels(t *testing.T) {
	models := DefaultModels()
	for _, p := range AllProviders() {
		require.NotEmpty(t, models[p], p.String())
	}
}
