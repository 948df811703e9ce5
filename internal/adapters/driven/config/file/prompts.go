package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/marknote-dev/marknote/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads assistant prompt templates from a user-editable
// TOML file with fallback to embedded defaults.
//
// The store uses lazy initialisation - the file is only created when
// first accessed, not in the constructor. This makes testing easier and
// avoids unexpected I/O.
type PromptStore struct {
	mu       sync.RWMutex
	filePath string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// defaultPrompts contains the embedded default prompt templates. These
// are used when no user override exists and as the initial content of
// the prompts file. Placeholders are positional fmt verbs; overrides
// must keep them in order.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptGeneral: `You are an AI markdown assistant. The user is working on the following document:

---document---
%s
---end document---

They have issued the following command:
"%s"

Based on this command, generate the appropriate Markdown content.
Your response should be *only* the resulting Markdown content. Do not include any conversational phrases or explanations.
For example, if asked to "create a list of planets", respond with "- Mercury\n- Venus\n- Earth".`,

	driven.PromptGeneralSelection: `You are an AI markdown assistant. The user has selected the following text:

---selected text---
%s
---end selected text---

They have issued the following command related to this selection (or the document in general):
"%s"

Based on the command, perform the requested action.
If the command is clearly about the selected text (e.g., "summarize this", "make this a list"), apply the command to the selected text.
If the command is more general (e.g., "add a new section about X"), then the selected text might just be for context, or not relevant.
Your response should be *only* the resulting Markdown content. Do not include any conversational phrases or explanations.
For example, if asked to "make this bold", and selected text is "hello", respond with "**hello**".`,

	driven.PromptSummarize: `You are an expert technical writing assistant. Summarize the following Markdown document in 3-5 sentences. Focus on the main ideas, topics, and any key points. Do not include explanations, markdown formatting, or conversational phrases - just the summary text.

---document---
%s
---end document---`,

	driven.PromptSummarizeAdvanced: `You are an expert technical writing assistant. Summarize the following Markdown document in %s. Focus on the main ideas, topics, and any key points.
%s
%s
Do not include explanations or conversational phrases - respond with the summary only.

---document---
%s
---end document---`,

	driven.PromptExpand: `You are an AI assistant helping a user write a Markdown document.
The user has selected the following text and wants to expand it into a more detailed section:

---selected text---
%s
---end selected text---

Your task is to expand this selected text into a comprehensive Markdown section.
This might involve adding more details, examples, explanations, or even creating sub-headings, lists, or tables if appropriate.
Ensure the output is well-formatted Markdown.
Respond *only* with the expanded Markdown content. Do not include any conversational preamble or explanation.`,

	driven.PromptRefine: `You are an AI writing assistant.
The user has selected the following text and wants to refine it:

---text to refine---
%s
---end text to refine---

Your task is to improve this text for clarity, conciseness, and overall impact, while strictly maintaining its original meaning.
Focus on:
- Eliminating wordiness and redundancy.
- Using stronger verbs and more precise language.
- Ensuring grammatical correctness and proper sentence structure.
- Improving flow and readability.
- Using active voice where appropriate.

Respond *only* with the refined text. Do not add any explanations, apologies, or conversational phrases.
If the original text is already excellent and cannot be improved without changing its meaning, return the original text.`,

	driven.PromptAnalyze: `You are an AI assistant reviewing a Markdown document.
Here is the full document:

---document---
%s
---end document---

Please analyze this document and provide constructive feedback. Focus on:
1.  **Structure and Organization:** Is the document logically structured? Are sections well-defined?
2.  **Heading Hierarchy:** Is the use of headings (H1, H2, H3, etc.) correct and consistent?
3.  **Content Completeness:** Are there any obvious gaps in information or areas that need more detail?
4.  **Markdown Formatting Consistency:** Is Markdown syntax used correctly and consistently (e.g., for lists, bolding, code blocks)?
5.  **Readability and Clarity:** Is the language clear and easy to understand? Are there any complex sentences that could be simplified?

Provide specific, actionable suggestions for improvement. Format your feedback clearly, perhaps using bullet points for each suggestion.
Avoid generic praise; focus on areas where the document can be improved.`,

	driven.PromptCreateTable: `You are an AI assistant helping a user create a Markdown table.

The user wants to create a table with the following description:
---description---
%s
---end description---

Your task is to generate the Markdown code for this table.
- Infer column headers and a reasonable number of example rows if not explicitly stated.
- Ensure the output is valid Markdown.
- Respond *only* with the Markdown table. Do not include any conversational preamble, explanation, or backticks around the markdown block.

Example if description is "a 2-column table for fruits and their colors with 2 examples":
| Fruit  | Color  |
|--------|--------|
| Apple  | Red    |
| Banana | Yellow |`,

	driven.PromptCreateDiagram: `You are an AI assistant helping a user create a Mermaid diagram for Markdown.

The user wants to create a diagram with the following description:
---description---
%s
---end description---

Your task is to generate the Mermaid code block for this diagram.
- Use the correct Mermaid syntax (e.g., graph TD, flowchart, sequenceDiagram, etc.)
- Respond ONLY with the Mermaid code block, wrapped in triple backticks with 'mermaid'.
- Do NOT include any explanation, preamble, or extra formatting.

Example if description is "a simple flowchart with Start, Process, End":
` + "```mermaid" + `
graph TD
  Start --> Process --> End
` + "```",

	driven.PromptAutoLink: `You are an AI knowledge base assistant. The user is editing a markdown note. Here is the document:
---markdown---
%s
---end markdown---

Here is a list of all other note titles in the workspace:
%s

Your task:
- For every note title, you MUST add a markdown link at the first relevant spot in the document, even if it's only a partial match or a related concept.
- Use the format [Term](NoteTitle.md).
- If you do not add at least 3 links, you have failed the task.
- Do not change the document except for adding these links.
- Return ONLY the new markdown, no explanation, no extra formatting.
- Example: If the note titles are 'Home' and 'Page Name', and the document mentions these or related concepts, link them as [Home](Home.md), [Page Name](Page Name.md) at their first occurrence.`,

	driven.PromptFindRelated: `You are an AI knowledge base assistant. The user is editing a markdown note. Here is the document:
---markdown---
%s
---end markdown---

Here is a list of all other note titles in the workspace:
%s

Your task is to identify which of these notes are most related to the document's content.
- List the most related note titles as a Markdown bullet list, most relevant first.
- After each title, add a short phrase explaining the connection.
- Only include titles from the provided list; never invent titles.
- If none of the notes are related, say so in a single sentence.
Respond *only* with the list (or the single sentence). Do not include any conversational phrases.`,

	driven.PromptSemanticSearch: `You are an AI knowledge base assistant. The user is searching their notes workspace.

Their query:
"%s"

Here is a list of all note titles in the workspace:
%s

Your task is to identify which notes most likely match the query by meaning, not just keywords.
- List the matching note titles as a Markdown bullet list, best match first.
- After each title, add a short phrase explaining why it matches.
- Only include titles from the provided list; never invent titles.
- If nothing matches, say so in a single sentence.
Respond *only* with the list (or the single sentence). Do not include any conversational phrases.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptPath is empty, defaults to ~/.marknote/prompts.toml.
//
// The constructor does not perform any I/O - file creation happens
// lazily on first Load() call.
func NewPromptStore(promptPath string) (*PromptStore, error) {
	if promptPath == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config directory: %w", err)
		}
		promptPath = filepath.Join(dir, "prompts.toml")
	}

	return &PromptStore{
		filePath: promptPath,
		cache:    make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompts file with the defaults. User
// edits to the file override the embedded templates per name.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok && prompt != "" {
		return prompt, nil
	}

	if prompt, ok := defaultPrompts[name]; ok {
		return prompt, nil
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

// Reload re-reads the prompts file, picking up user edits.
func (s *PromptStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Path returns the prompts file path.
func (s *PromptStore) Path() string {
	return s.filePath
}

// initialise creates the prompts file with defaults and loads it.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		s.initErr = fmt.Errorf("create config directory: %w", err)
		return
	}

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		data, err := toml.Marshal(defaultPrompts)
		if err != nil {
			s.initErr = fmt.Errorf("marshal default prompts: %w", err)
			return
		}
		if err := os.WriteFile(s.filePath, data, 0600); err != nil {
			s.initErr = fmt.Errorf("create prompts file: %w", err)
			return
		}
	}

	s.initErr = s.load()
}

// load reads the prompts file into the cache (caller must hold lock).
func (s *PromptStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read prompts file: %w", err)
	}

	loaded := make(map[string]string)
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse prompts file: %w", err)
	}

	s.cache = loaded
	return nil
}
