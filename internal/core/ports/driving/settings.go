package driving

import (
	"github.com/marknote-dev/marknote/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, applying defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save persists settings to the configuration file.
	Save(settings *domain.AppSettings) error
}
