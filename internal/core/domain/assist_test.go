package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistRequest_Validate(t *testing.T) {
	t.Run("general command with empty prompt is rejected", func(t *testing.T) {
		req := AssistRequest{Action: ActionGeneral, Prompt: "  ", Input: "doc text"}
		assert.ErrorIs(t, req.Validate(), ErrEmptyPrompt)
	})

	t.Run("create table with empty prompt is rejected", func(t *testing.T) {
		req := AssistRequest{Action: ActionCreateTable, Prompt: ""}
		assert.ErrorIs(t, req.Validate(), ErrEmptyPrompt)
	})

	t.Run("expand with no selection is rejected", func(t *testing.T) {
		req := AssistRequest{Action: ActionExpand, Input: ""}
		assert.ErrorIs(t, req.Validate(), ErrEmptySelection)
	})

	t.Run("summarize with empty document is rejected", func(t *testing.T) {
		req := AssistRequest{Action: ActionSummarize, Input: "\n\n"}
		assert.ErrorIs(t, req.Validate(), ErrEmptyDocument)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		req := AssistRequest{Action: ActionType("nope"), Prompt: "x"}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})

	t.Run("valid general command passes", func(t *testing.T) {
		req := AssistRequest{Action: ActionGeneral, Prompt: "Summarize", Input: "A B C."}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid refine with selection passes", func(t *testing.T) {
		req := AssistRequest{Action: ActionRefine, Input: "the selected words", FromSelection: true}
		assert.NoError(t, req.Validate())
	})
}

func TestAssistResult_Display(t *testing.T) {
	t.Run("success shows text", func(t *testing.T) {
		r := AssistResult{Text: "generated"}
		assert.Equal(t, "generated", r.Display())
		assert.False(t, r.Failed())
	})

	t.Run("failure shows tagged error", func(t *testing.T) {
		r := AssistResult{Err: errors.New("quota exceeded")}
		display := r.Display()

		assert.True(t, r.Failed())
		assert.True(t, IsTaggedError(display))
		assert.Contains(t, display, "quota exceeded")
	})
}

func TestTagError(t *testing.T) {
	tagged := TagError(errors.New("request timed out"))
	assert.Equal(t, "[AI Error: request timed out]", tagged)
	assert.True(t, IsTaggedError(tagged))
	assert.False(t, IsTaggedError("plain result text"))
}

func TestSummaryOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := DefaultSummaryOptions()
		assert.Equal(t, SummaryMedium, opts.Length)
		assert.Equal(t, StyleParagraph, opts.Style)
		assert.Zero(t, opts.SentenceCount)
	})

	t.Run("length validity", func(t *testing.T) {
		require.True(t, SummaryShort.IsValid())
		require.True(t, SummaryLong.IsValid())
		assert.False(t, SummaryLength("huge").IsValid())
	})

	t.Run("style validity", func(t *testing.T) {
		assert.True(t, StyleBullets.IsValid())
		assert.False(t, SummaryStyle("table").IsValid())
	})

	t.Run("sentence ranges", func(t *testing.T) {
		assert.Equal(t, "1-2 sentences", SummaryShort.Sentences())
		assert.Equal(t, "3-5 sentences", SummaryMedium.Sentences())
		assert.Equal(t, "6-10 sentences", SummaryLong.Sentences())
	})
}
