package services

import (
	"fmt"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider = "llm.provider"
	keyLLMModel    = "llm.model"
	keyLLMBaseURL  = "llm.base_url"
	keyLLMAPIKey   = "llm.api_key"

	keyAutoSaveEnabled  = "editor.auto_save"
	keyAutoSaveInterval = "editor.auto_save_interval_secs"
	keySyncScroll       = "editor.sync_scroll"

	keyNotesFolder = "notes.folder"
	keyLastNote    = "notes.last_note"
)

// SettingsService manages application settings over the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, applying defaults for unset keys.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Editor: domain.EditorSettings{
			AutoSaveEnabled:      s.getBool(keyAutoSaveEnabled, defaults.Editor.AutoSaveEnabled),
			AutoSaveIntervalSecs: s.getInt(keyAutoSaveInterval, defaults.Editor.AutoSaveIntervalSecs),
			SyncScroll:           s.getBool(keySyncScroll, defaults.Editor.SyncScroll),
		},
		Notes: domain.NotesSettings{
			Folder:   s.configStore.GetString(keyNotesFolder),
			LastNote: s.configStore.GetString(keyLastNote),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if err := s.configStore.Set(keyAutoSaveEnabled, settings.Editor.AutoSaveEnabled); err != nil {
		return fmt.Errorf("save auto_save: %w", err)
	}
	if err := s.configStore.Set(keyAutoSaveInterval, settings.Editor.AutoSaveIntervalSecs); err != nil {
		return fmt.Errorf("save auto_save_interval_secs: %w", err)
	}
	if err := s.configStore.Set(keySyncScroll, settings.Editor.SyncScroll); err != nil {
		return fmt.Errorf("save sync_scroll: %w", err)
	}

	if err := s.configStore.Set(keyNotesFolder, settings.Notes.Folder); err != nil {
		return fmt.Errorf("save notes folder: %w", err)
	}
	if err := s.configStore.Set(keyLastNote, settings.Notes.LastNote); err != nil {
		return fmt.Errorf("save last note: %w", err)
	}

	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
