package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
	"github.com/marknote-dev/marknote/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService validates, composes, and dispatches assistant
// requests. It owns the monotonic request counter used for
// supersession: results whose ID is below the latest prepared ID
// are stale and must be discarded by the caller.
type AssistantService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	nextID  atomic.Uint64
}

// NewAssistantService creates an assistant backed by the given LLM.
// A nil llm produces a disabled assistant: Prepare fails with
// domain.ErrAIUnavailable and nothing is ever dispatched.
func NewAssistantService(llm driven.LLMService, prompts driven.PromptStore) *AssistantService {
	return &AssistantService{
		llm:     llm,
		prompts: prompts,
	}
}

// Enabled reports whether an LLM is configured.
func (s *AssistantService) Enabled() bool {
	return s.llm != nil
}

// LatestID returns the most recently issued request ID.
func (s *AssistantService) LatestID() uint64 {
	return s.nextID.Load()
}

// Prepare validates the action's preconditions against the input and
// returns a dispatchable request. Validation failures return before a
// request ID is consumed, so a rejected action never supersedes an
// in-flight one.
func (s *AssistantService) Prepare(action domain.ActionType, input driving.AssistInput) (domain.AssistRequest, error) {
	if !s.Enabled() {
		return domain.AssistRequest{}, domain.ErrAIUnavailable
	}

	spec, ok := action.Spec()
	if !ok {
		return domain.AssistRequest{}, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}

	req := domain.AssistRequest{
		Action:  action,
		Prompt:  strings.TrimSpace(input.Prompt),
		Summary: input.Summary,
	}
	if spec.UsesNoteTitles {
		req.NoteTitles = input.NoteTitles
	}

	switch spec.Scope {
	case domain.ScopeSelection:
		req.Input = input.Selection
		req.FromSelection = true
	case domain.ScopeDocument:
		req.Input = input.Document
	case domain.ScopeSelectionOrDocument:
		if strings.TrimSpace(input.Selection) != "" {
			req.Input = input.Selection
			req.FromSelection = true
		} else {
			req.Input = input.Document
		}
	}

	if err := req.Validate(); err != nil {
		return domain.AssistRequest{}, err
	}

	req.ID = s.nextID.Add(1)
	return req, nil
}

// Execute composes the prompt for a prepared request and performs the
// remote call. Remote failures come back inside the result rather than
// as an error: the caller's state machine treats them as a terminal
// Failed state, not a crash.
func (s *AssistantService) Execute(ctx context.Context, req domain.AssistRequest) domain.AssistResult {
	result := domain.AssistResult{
		RequestID:     req.ID,
		Action:        req.Action,
		FromSelection: req.FromSelection,
	}

	if !s.Enabled() {
		result.Err = domain.ErrAIUnavailable
		return result
	}

	prompt, err := s.composePrompt(req)
	if err != nil {
		result.Err = fmt.Errorf("compose prompt: %w", err)
		return result
	}

	spec, _ := req.Action.Spec()
	logger.Debug("assist %s (id=%d, %d prompt bytes)", req.Action, req.ID, len(prompt))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens: maxTokensFor(spec, req),
	})
	if err != nil {
		result.Err = err
		return result
	}

	result.Text = strings.TrimSpace(text)
	return result
}

// maxTokensFor returns the generation cap for a request. Rewriting
// actions scale with the input so long documents are not truncated.
func maxTokensFor(spec domain.ActionSpec, req domain.AssistRequest) int {
	switch req.Action {
	case domain.ActionRefine, domain.ActionAutoLink:
		// Rough chars-to-tokens estimate plus headroom for additions.
		if scaled := len(req.Input)/3 + 200; scaled > spec.MaxTokens {
			return scaled
		}
	}
	return spec.MaxTokens
}

// composePrompt loads the action's template and fills it from the
// request. Template placeholders are positional fmt verbs, so user
// overrides must keep them in order.
func (s *AssistantService) composePrompt(req domain.AssistRequest) (string, error) {
	switch req.Action {
	case domain.ActionGeneral:
		if req.FromSelection {
			return s.fill(driven.PromptGeneralSelection, req.Input, req.Prompt)
		}
		return s.fill(driven.PromptGeneral, req.Input, req.Prompt)

	case domain.ActionSummarize:
		return s.fill(driven.PromptSummarize, req.Input)

	case domain.ActionSummarizeAdvanced:
		return s.fill(driven.PromptSummarizeAdvanced,
			summaryTarget(req.Summary),
			summaryStyle(req.Summary.Style),
			summaryKeywords(req.Summary.Keywords, req.Prompt),
			req.Input,
		)

	case domain.ActionExpand:
		return s.fill(driven.PromptExpand, req.Input)

	case domain.ActionRefine:
		return s.fill(driven.PromptRefine, req.Input)

	case domain.ActionAnalyze:
		return s.fill(driven.PromptAnalyze, req.Input)

	case domain.ActionCreateTable:
		return s.fill(driven.PromptCreateTable, req.Prompt)

	case domain.ActionCreateDiagram:
		return s.fill(driven.PromptCreateDiagram, req.Prompt)

	case domain.ActionAutoLink:
		return s.fill(driven.PromptAutoLink, req.Input, strings.Join(req.NoteTitles, ", "))

	case domain.ActionFindRelated:
		return s.fill(driven.PromptFindRelated, req.Input, strings.Join(req.NoteTitles, ", "))

	case domain.ActionSemanticSearch:
		return s.fill(driven.PromptSemanticSearch, req.Prompt, strings.Join(req.NoteTitles, ", "))

	default:
		return "", fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, req.Action)
	}
}

// fill loads a template by name and applies its positional arguments.
func (s *AssistantService) fill(name string, args ...any) (string, error) {
	tmpl, err := s.prompts.Load(name)
	if err != nil {
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}
	return fmt.Sprintf(tmpl, args...), nil
}

/// summaryTarget renders the sentence target: an explicit count wins
// over the length preset.
func summaryTarget(opts domain.SummaryOptions) string {
	if opts.SentenceCount > 0 {
		return fmt.Sprintf("%d sentences", opts.SentenceCount)
	}
	return opts.Length.Sentences()
}

// summaryStyle renders the output-style instruction.
func summaryStyle(style domain.SummaryStyle) string {
	if style == domain.StyleBullets {
		return "Format the summary as a Markdown bullet list, one point per bullet."
	}
	return "Write the summary as a single flowing paragraph."
}

// summaryKeywords renders the keyword-emphasis instruction. Keywords
// typed into the prompt field are merged with structured options.
func summaryKeywords(keywords []string, prompt string) string {
	merged := make([]string, 0, len(keywords)+1)
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			merged = append(merged, k)
		}
	}
	for _, k := range strings.Split(prompt, ",") {
		if k = strings.TrimSpace(k); k != "" {
			merged = append(merged, k)
		}
	}
	if len(merged) == 0 {
		return ""
	}
	return fmt.Sprintf("Give particular attention to these keywords: %s.", strings.Join(merged, ", "))
}
