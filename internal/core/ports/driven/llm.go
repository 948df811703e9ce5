package driven

import "context"

// GenerateOptions controls text generation.
type GenerateOptions struct {
	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// Temperature controls randomness (0 = provider default).
	Temperature float64
}

// LLMService is the remote text-generation boundary. One request in,
// generated text or an error out; the vendor wire format is the
// adapter's concern.
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Ping validates the service is reachable and the credentials work,
	// without running inference.
	Ping(ctx context.Context) error

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
