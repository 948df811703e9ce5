package driven

// Prompt template names, one per assistant action that composes a prompt.
const (
	PromptGeneral           = "general"
	PromptGeneralSelection  = "general_selection"
	PromptSummarize         = "summarize"
	PromptSummarizeAdvanced = "summarize_advanced"
	PromptExpand            = "expand"
	PromptRefine            = "refine"
	PromptAnalyze           = "analyze"
	PromptCreateTable       = "create_table"
	PromptCreateDiagram     = "create_diagram"
	PromptAutoLink          = "auto_link"
	PromptFindRelated       = "find_related"
	PromptSemanticSearch    = "semantic_search"
)

// PromptStore loads user-customisable prompt templates. Implementations
// fall back to embedded defaults when no user override exists.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
