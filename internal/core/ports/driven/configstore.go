package driven

// ConfigStore persists application configuration as flat key/value pairs.
// Keys use dot notation (e.g. "llm.api_key"). Writes persist immediately.
type ConfigStore interface {
	// Get retrieves a raw value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if unset.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if unset.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false if unset.
	GetBool(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Load re-reads configuration from the backing file.
	Load() error

	// Path returns the backing file path.
	Path() string
}
