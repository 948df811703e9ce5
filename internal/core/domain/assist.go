package domain

import (
	"fmt"
	"strings"
)

// SummaryLength is the length preference for advanced summarization.
type SummaryLength string

// Available summary lengths.
const (
	// SummaryShort targets roughly 1-2 sentences.
	SummaryShort SummaryLength = "short"

	// SummaryMedium targets roughly 3-5 sentences.
	SummaryMedium SummaryLength = "medium"

	// SummaryLong targets roughly 6-10 sentences.
	SummaryLong SummaryLength = "long"
)

// IsValid returns true if the length is recognised.
func (l SummaryLength) IsValid() bool {
	switch l {
	case SummaryShort, SummaryMedium, SummaryLong:
		return true
	default:
		return false
	}
}

// Sentences returns the target sentence range description for prompts.
func (l SummaryLength) Sentences() string {
	switch l {
	case SummaryShort:
		return "1-2 sentences"
	case SummaryMedium:
		return "3-5 sentences"
	case SummaryLong:
		return "6-10 sentences"
	default:
		return "3-5 sentences"
	}
}

// SummaryStyle is the output style for advanced summarization.
type SummaryStyle string

// Available summary styles.
const (
	// StyleParagraph produces flowing prose.
	StyleParagraph SummaryStyle = "paragraph"

	// StyleBullets produces a Markdown bullet list.
	StyleBullets SummaryStyle = "bullets"
)

// IsValid returns true if the style is recognised.
func (s SummaryStyle) IsValid() bool {
	return s == StyleParagraph || s == StyleBullets
}

// SummaryOptions are the structured parameters for ActionSummarizeAdvanced.
type SummaryOptions struct {
	// Length is the preferred summary length. Ignored when SentenceCount
	// is set.
	Length SummaryLength

	// SentenceCount is an explicit numeric sentence target (0 = unset).
	SentenceCount int

	// Style selects paragraph or bullet-point output.
	Style SummaryStyle

	// Keywords to emphasise in the summary, if any.
	Keywords []string
}

// DefaultSummaryOptions returns medium-length paragraph summarization.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		Length: SummaryMedium,
		Style:  StyleParagraph,
	}
}

// AssistRequest is a single dispatched assistant operation. Each dispatch
// carries a monotonically increasing ID; late responses whose ID does not
// match the latest outstanding request are discarded (supersession).
type AssistRequest struct {
	// ID is the monotonic request identifier.
	ID uint64

	// Action is the operation being performed.
	Action ActionType

	// Prompt is the user-supplied free-text prompt, where applicable.
	Prompt string

	// Input is the scoped input text (selection or whole document).
	Input string

	// FromSelection marks that Input came from a selection rather than
	// the whole document. Decides replace-vs-append for general commands.
	FromSelection bool

	// NoteTitles are the workspace note titles, for actions that use them.
	NoteTitles []string

	// Summary carries options for ActionSummarizeAdvanced.
	Summary SummaryOptions
}

// AssistResult is the outcome of an assistant request. Exactly one of
// Text or Err is meaningful; results are displayed once and discarded
// when superseded by the next request.
type AssistResult struct {
	// RequestID ties the result to its originating request.
	RequestID uint64

	// Action is the originating request's action type, used to decide
	// which follow-up controls are offered.
	Action ActionType

	// FromSelection is copied from the originating request.
	FromSelection bool

	// Text is the generated text. Empty on failure.
	Text string

	// Err is the failure, if any. Remote-service failures are non-fatal
	// and carry no follow-up controls.
	Err error
}

// Failed reports whether the result represents an error.
func (r AssistResult) Failed() bool {
	return r.Err != nil
}

// errorTag prefixes error strings so they are distinguishable from
// generated content wherever results are rendered as plain text.
const errorTag = "[AI Error: "

// TagError formats an error as a marked result string.
func TagError(err error) string {
	return errorTag + err.Error() + "]"
}

// IsTaggedError reports whether a result string carries the error marker.
func IsTaggedError(s string) bool {
	return strings.HasPrefix(s, errorTag)
}

// Display returns the result text, or the tagged error string on failure.
func (r AssistResult) Display() string {
	if r.Err != nil {
		return TagError(r.Err)
	}
	return r.Text
}

// Validate checks the request's preconditions against the action table.
// It must reject before dispatch: empty prompt where a prompt is required,
// empty selection where a selection is required, and empty documents for
// whole-document actions.
func (r AssistRequest) Validate() error {
	spec, ok := r.Action.Spec()
	if !ok {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, r.Action)
	}
	if spec.NeedsPrompt && strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	if spec.NeedsSelection && strings.TrimSpace(r.Input) == "" {
		return ErrEmptySelection
	}
	if spec.NeedsDocument && strings.TrimSpace(r.Input) == "" {
		return ErrEmptyDocument
	}
	return nil
}
