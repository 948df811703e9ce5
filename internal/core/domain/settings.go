package domain

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p != AIProviderOllama
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// AllProviders returns all supported LLM providers.
func AllProviders() []AIProvider {
	return []AIProvider{
		AIProviderGemini,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultModels returns the default model for each provider.
func DefaultModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini:    "gemini-1.5-flash",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderOllama:    "llama3.2",
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the model name. Empty selects the provider default.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible endpoints).
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the LLM provider is usable. AI features
// stay disabled until this holds.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// EditorSettings holds editor and preview behaviour configuration.
type EditorSettings struct {
	// AutoSaveEnabled turns the auto-save timer on.
	AutoSaveEnabled bool

	// AutoSaveIntervalSecs is the auto-save tick interval in seconds.
	AutoSaveIntervalSecs int

	// SyncScroll keeps the preview scroll position mapped to the editor.
	SyncScroll bool
}

// NotesSettings holds workspace configuration.
type NotesSettings struct {
	// Folder is the root notes directory.
	Folder string

	// LastNote is the path of the most recently open note, restored
	// on next launch.
	LastNote string
}

// AppSettings holds all application settings. Loaded once at startup and
// rewritten on preference changes.
type AppSettings struct {
	// LLM holds AI provider settings.
	LLM LLMSettings

	// Editor holds editor and preview settings.
	Editor EditorSettings

	// Notes holds workspace settings.
	Notes NotesSettings
}

// DefaultAppSettings returns settings with sensible defaults. The LLM is
// left unconfigured; users must supply an API key before AI features work.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderGemini,
			Model:    "", // provider default
		},
		Editor: EditorSettings{
			AutoSaveEnabled:      false,
			AutoSaveIntervalSecs: 30,
			SyncScroll:           true,
		},
		Notes: NotesSettings{},
	}
}
