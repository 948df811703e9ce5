package driving

import (
	"context"

	"github.com/marknote-dev/marknote/internal/core/domain"
)

// AssistInput is what the panel hands the assistant when the user fires
// an action: the prompt text, the current selection (may be empty), the
// whole document, the workspace note titles for linking actions, and
// advanced-summary options where applicable.
type AssistInput struct {
	Prompt     string
	Selection  string
	Document   string
	NoteTitles []string
	Summary    domain.SummaryOptions
}

// AssistantService validates, composes, and dispatches AI requests.
type AssistantService interface {
	// Enabled reports whether an LLM is configured. When false, every
	// Prepare call fails with domain.ErrAIUnavailable.
	Enabled() bool

	// Prepare validates preconditions for the action against the input
	// and returns a dispatchable request carrying a fresh monotonic ID.
	// Validation failures return before any request is created.
	Prepare(action domain.ActionType, input AssistInput) (domain.AssistRequest, error)

	// Execute performs the remote call for a prepared request. The
	// returned result carries the request's ID so callers can discard
	// superseded responses. Remote failures are reported in the result,
	// not as an error.
	Execute(ctx context.Context, req domain.AssistRequest) domain.AssistResult

	// LatestID returns the identifier of the most recently prepared
	// request. Results with a smaller ID are stale.
	LatestID() uint64
}
