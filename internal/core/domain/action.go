package domain

const unknownDescription = "Unknown"

// ActionType identifies an AI assistant operation.
type ActionType string

// Available assistant actions.
const (
	// ActionGeneral executes a free-form natural language command.
	ActionGeneral ActionType = "general"

	// ActionSummarize produces a short summary of the whole document.
	ActionSummarize ActionType = "summarize"

	// ActionSummarizeAdvanced summarizes with length/style/keyword options.
	ActionSummarizeAdvanced ActionType = "summarize_advanced"

	// ActionExpand expands the selected text into a detailed section.
	ActionExpand ActionType = "expand"

	// ActionRefine rewrites the selected text for clarity and concision.
	ActionRefine ActionType = "refine"

	// ActionAnalyze reviews the whole document and reports feedback.
	ActionAnalyze ActionType = "analyze"

	// ActionCreateTable generates a Markdown table from a description.
	ActionCreateTable ActionType = "create_table"

	// ActionCreateDiagram generates a Mermaid code block from a description.
	ActionCreateDiagram ActionType = "create_diagram"

	// ActionAutoLink rewrites the document adding links to other notes.
	ActionAutoLink ActionType = "auto_link"

	// ActionFindRelated lists workspace notes related to the document.
	ActionFindRelated ActionType = "find_related"

	// ActionSemanticSearch finds notes matching a free-form query.
	ActionSemanticSearch ActionType = "semantic_search"
)

// FollowUp is a user-invokable operation offered after a result is shown.
type FollowUp string

// Available follow-up controls.
const (
	// FollowUpCopy copies the result text to the system clipboard.
	FollowUpCopy FollowUp = "copy"

	// FollowUpInsert inserts the result at the cursor position.
	FollowUpInsert FollowUp = "insert"

	// FollowUpReplace replaces the current selection with the result.
	FollowUpReplace FollowUp = "replace"

	// FollowUpReplaceDocument replaces the whole document with the result.
	FollowUpReplaceDocument FollowUp = "replace_document"
)

// InputScope identifies what text an action operates on.
type InputScope int

// Input scopes.
const (
	// ScopeNone means the action works from the prompt alone.
	ScopeNone InputScope = iota

	// ScopeSelection means the action operates on the selected text.
	ScopeSelection

	// ScopeDocument means the action operates on the whole document.
	ScopeDocument

	// ScopeSelectionOrDocument prefers the selection, falling back to
	// the whole document when nothing is selected.
	ScopeSelectionOrDocument
)

// ActionSpec describes the fixed per-action behaviour: preconditions,
// input scope, panel placeholder text, and the follow-up controls offered
// on completion. Modelled as a lookup table rather than branching chains.
type ActionSpec struct {
	// Label is the human-readable action name shown in the panel.
	Label string

	// Placeholder is the prompt input placeholder text.
	Placeholder string

	// NeedsPrompt requires non-empty prompt text before dispatch.
	NeedsPrompt bool

	// NeedsSelection requires a non-empty selection before dispatch.
	NeedsSelection bool

	// NeedsDocument requires a non-empty document before dispatch.
	NeedsDocument bool

	// UsesNoteTitles includes the workspace note titles in the request.
	UsesNoteTitles bool

	// Scope is the input text the action operates on.
	Scope InputScope

	// MaxTokens caps the generation length for this action.
	MaxTokens int

	// FollowUps are the controls offered when the action completes.
	FollowUps []FollowUp
}

// actionSpecs is the per-action behaviour table.
var actionSpecs = map[ActionType]ActionSpec{
	ActionGeneral: {
		Label:       "General Command",
		Placeholder: "AI Command (e.g. \"make this a checklist\")",
		NeedsPrompt: true,
		Scope:       ScopeSelectionOrDocument,
		MaxTokens:   400,
		FollowUps:   []FollowUp{FollowUpCopy, FollowUpInsert, FollowUpReplace},
	},
	ActionSummarize: {
		Label:         "Summarize Page",
		Placeholder:   "",
		NeedsDocument: true,
		Scope:         ScopeDocument,
		MaxTokens:     200,
		FollowUps:     []FollowUp{FollowUpCopy, FollowUpInsert},
	},
	ActionSummarizeAdvanced: {
		Label:         "Summarize (Advanced)",
		Placeholder:   "Keywords to emphasise (optional, comma-separated)",
		NeedsDocument: true,
		Scope:         ScopeDocument,
		MaxTokens:     400,
		FollowUps:     []FollowUp{FollowUpCopy, FollowUpInsert},
	},
	ActionExpand: {
		Label:          "Expand Selection",
		NeedsSelection: true,
		Scope:          ScopeSelection,
		MaxTokens:      400,
		FollowUps:      []FollowUp{FollowUpCopy, FollowUpInsert, FollowUpReplace},
	},
	ActionRefine: {
		Label:          "Refine Selection",
		NeedsSelection: true,
		Scope:          ScopeSelection,
		MaxTokens:      400,
		FollowUps:      []FollowUp{FollowUpCopy, FollowUpReplace},
	},
	ActionAnalyze: {
		Label:         "Analyze Document",
		NeedsDocument: true,
		Scope:         ScopeDocument,
		MaxTokens:     400,
		FollowUps:     []FollowUp{FollowUpCopy},
	},
	ActionCreateTable: {
		Label:       "Create Table",
		Placeholder: "Describe the table (e.g. \"3 columns: Name, Price, Stock\")",
		NeedsPrompt: true,
		Scope:       ScopeNone,
		MaxTokens:   600,
		FollowUps:   []FollowUp{FollowUpCopy, FollowUpInsert},
	},
	ActionCreateDiagram: {
		Label:       "Create Diagram",
		Placeholder: "Describe the diagram (e.g. \"flowchart: Start, Process, End\")",
		NeedsPrompt: true,
		Scope:       ScopeNone,
		MaxTokens:   600,
		FollowUps:   []FollowUp{FollowUpCopy, FollowUpInsert},
	},
	ActionAutoLink: {
		Label:          "Auto-Link Notes",
		NeedsDocument:  true,
		UsesNoteTitles: true,
		Scope:          ScopeDocument,
		MaxTokens:      2048,
		FollowUps:      []FollowUp{FollowUpReplaceDocument, FollowUpCopy},
	},
	ActionFindRelated: {
		Label:          "Find Related Notes",
		NeedsDocument:  true,
		UsesNoteTitles: true,
		Scope:          ScopeDocument,
		MaxTokens:      300,
		FollowUps:      []FollowUp{FollowUpCopy},
	},
	ActionSemanticSearch: {
		Label:          "Semantic Search",
		Placeholder:    "What are you looking for?",
		NeedsPrompt:    true,
		UsesNoteTitles: true,
		Scope:          ScopeNone,
		MaxTokens:      300,
		FollowUps:      []FollowUp{FollowUpCopy},
	},
}

// Spec returns the behaviour table entry for the action.
// The second return value is false for unknown actions.
func (a ActionType) Spec() (ActionSpec, bool) {
	spec, ok := actionSpecs[a]
	return spec, ok
}

// IsValid returns true if the action type is recognised.
func (a ActionType) IsValid() bool {
	_, ok := actionSpecs[a]
	return ok
}

// String returns the string representation.
func (a ActionType) String() string {
	return string(a)
}

// Description returns the human-readable action label.
func (a ActionType) Description() string {
	spec, ok := actionSpecs[a]
	if !ok {
		return unknownDescription
	}
	return spec.Label
}

// Offers reports whether the action offers the given follow-up control.
func (a ActionType) Offers(f FollowUp) bool {
	spec, ok := actionSpecs[a]
	if !ok {
		return false
	}
	for _, fu := range spec.FollowUps {
		if fu == f {
			return true
		}
	}
	return false
}

// AllActions returns all actions in panel display order.
func AllActions() []ActionType {
	return []ActionType{
		ActionGeneral,
		ActionSummarize,
		ActionSummarizeAdvanced,
		ActionExpand,
		ActionRefine,
		ActionAnalyze,
		ActionCreateTable,
		ActionCreateDiagram,
		ActionAutoLink,
		ActionFindRelated,
		ActionSemanticSearch,
	}
}
