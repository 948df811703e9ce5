package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
)

var (
	aiPrompt    string
	aiLength    string
	aiStyle     string
	aiKeywords  string
	aiSentences int
)

// assistantService handles one-shot AI invocations.
var assistantService driving.AssistantService

// libraryService supplies note titles for linking actions.
var libraryService driving.LibraryService

var aiCmd = &cobra.Command{
	Use:   "ai <action> [file]",
	Short: "Run an assistant action on a file or stdin",
	Long: `Runs a one-shot AI action and prints the result to stdout.

Input comes from the file argument, or from stdin when no file is given.

Actions:
  summarize           - Summarize the input
  summarize_advanced  - Summarize with --length, --sentences, --style, --keywords
  expand              - Expand the input into a detailed section
  refine              - Rewrite the input for clarity and concision
  analyze             - Review the input and report feedback
  general             - Free-form command over the input (needs --prompt)
  create_table        - Generate a Markdown table (needs --prompt)
  create_diagram      - Generate a Mermaid diagram (needs --prompt)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAI,
}

// SetAssistantService sets the assistant used by the ai command.
func SetAssistantService(service driving.AssistantService) {
	assistantService = service
}

// SetLibraryService sets the library used for note-title lookups.
func SetLibraryService(service driving.LibraryService) {
	libraryService = service
}

func init() {
	aiCmd.Flags().StringVarP(&aiPrompt, "prompt", "p", "", "prompt text for prompt-driven actions")
	aiCmd.Flags().StringVar(&aiLength, "length", "", "summary length: short, medium, long")
	aiCmd.Flags().IntVar(&aiSentences, "sentences", 0, "summary length as an exact sentence count")
	aiCmd.Flags().StringVar(&aiStyle, "style", "", "summary style: paragraph, bullets")
	aiCmd.Flags().StringVar(&aiKeywords, "keywords", "", "comma-separated keywords to emphasise")
	rootCmd.AddCommand(aiCmd)
}

func runAI(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if !assistantService.Enabled() {
		return errors.New("no AI provider configured; run 'marknote config set provider <name>'")
	}

	action := domain.ActionType(args[0])
	spec, ok := action.Spec()
	if !ok {
		return fmt.Errorf("unknown action: %s", args[0])
	}

	text, err := readAIInput(cmd, args)
	if err != nil {
		return err
	}

	input := driving.AssistInput{
		Prompt:  aiPrompt,
		Summary: summaryOptions(),
	}
	switch spec.Scope {
	case domain.ScopeSelection:
		input.Selection = text
	case domain.ScopeDocument, domain.ScopeSelectionOrDocument:
		input.Document = text
	case domain.ScopeNone:
	}

	if spec.UsesNoteTitles && libraryService != nil {
		titles, err := libraryService.Titles()
		if err != nil {
			return fmt.Errorf("failed to list note titles: %w", err)
		}
		input.NoteTitles = titles
	}

	req, err := assistantService.Prepare(action, input)
	if err != nil {
		return fmt.Errorf("cannot run %s: %w", action, err)
	}

	result := assistantService.Execute(cmd.Context(), req)
	if result.Err != nil {
		return fmt.Errorf("AI request failed: %w", result.Err)
	}

	cmd.Println(result.Text)
	return nil
}

// readAIInput reads the action input from the file argument or stdin.
func readAIInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func summaryOptions() domain.SummaryOptions {
	opts := domain.DefaultSummaryOptions()
	if aiLength != "" {
		opts.Length = domain.SummaryLength(aiLength)
	}
	if aiSentences > 0 {
		opts.SentenceCount = aiSentences
	}
	if aiStyle != "" {
		opts.Style = domain.SummaryStyle(aiStyle)
	}
	if aiKeywords != "" {
		for _, k := range strings.Split(aiKeywords, ",") {
			if k = strings.TrimSpace(k); k != "" {
				opts.Keywords = append(opts.Keywords, k)
			}
		}
	}
	return opts
}
