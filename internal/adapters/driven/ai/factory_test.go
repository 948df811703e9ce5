package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marknote-dev/marknote/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantErr   bool
		wantModel string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
			wantNil:  true,
		},
		{
			name: "gemini without key is not configured",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderGemini,
			},
			wantNil: true,
		},
		{
			name: "gemini provider creates service with default model",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
			},
			wantModel: "gemini-1.5-flash",
		},
		{
			name: "ollama needs no key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
			},
			wantModel: "llama3.2",
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o",
			},
			wantModel: "gpt-4o",
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			wantModel: "claude-3-5-sonnet-latest",
		},
		{
			name: "unknown provider is not configured",
			settings: &domain.LLMSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestCreateAndValidateLLMService_Unconfigured(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	svc, err := CreateAndValidateLLMService(&domain.LLMSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc, "unconfigured settings should disable AI, not error")
}

func TestGeminiKeyEnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	settings := &domain.LLMSettings{Provider: domain.AIProviderGemini}
	applyKeyEnvFallback(settings)
	assert.Equal(t, "env-key", settings.APIKey)

	t.Run("stored key wins over environment", func(t *testing.T) {
		settings := &domain.LLMSettings{
			Provider: domain.AIProviderGemini,
			APIKey:   "stored-key",
		}
		applyKeyEnvFallback(settings)
		assert.Equal(t, "stored-key", settings.APIKey)
	})
}
