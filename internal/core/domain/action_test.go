package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionType_Spec_AllActionsHaveEntries(t *testing.T) {
	for _, action := range AllActions() {
		t.Run(action.String(), func(t *testing.T) {
			spec, ok := action.Spec()
			require.True(t, ok)
			assert.NotEmpty(t, spec.Label)
			assert.NotEmpty(t, spec.FollowUps)
			assert.Greater(t, spec.MaxTokens, 0)
		})
	}
}

func TestActionType_Spec_Unknown(t *testing.T) {
	_, ok := ActionType("bogus").Spec()
	assert.False(t, ok)
	assert.False(t, ActionType("bogus").IsValid())
	assert.Equal(t, unknownDescription, ActionType("bogus").Description())
}

func TestActionType_Preconditions(t *testing.T) {
	tests := []struct {
		action         ActionType
		needsPrompt    bool
		needsSelection bool
		needsDocument  bool
	}{
		{ActionGeneral, true, false, false},
		{ActionSummarize, false, false, true},
		{ActionSummarizeAdvanced, false, false, true},
		{ActionExpand, false, true, false},
		{ActionRefine, false, true, false},
		{ActionAnalyze, false, false, true},
		{ActionCreateTable, true, false, false},
		{ActionCreateDiagram, true, false, false},
		{ActionAutoLink, false, false, true},
		{ActionFindRelated, false, false, true},
		{ActionSemanticSearch, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			spec, ok := tt.action.Spec()
			require.True(t, ok)
			assert.Equal(t, tt.needsPrompt, spec.NeedsPrompt, "NeedsPrompt")
			assert.Equal(t, tt.needsSelection, spec.NeedsSelection, "NeedsSelection")
			assert.Equal(t, tt.needsDocument, spec.NeedsDocument, "NeedsDocument")
		})
	}
}

func TestActionType_Offers(t *testing.T) {
	t.Run("auto-link offers whole-document replacement only there", func(t *testing.T) {
		assert.True(t, ActionAutoLink.Offers(FollowUpReplaceDocument))
		for _, action := range AllActions() {
			if action == ActionAutoLink {
				continue
			}
			assert.False(t, action.Offers(FollowUpReplaceDocument), action.String())
		}
	})

	t.Run("every action offers copy", func(t *testing.T) {
		for _, action := range AllActions() {
			assert.True(t, action.Offers(FollowUpCopy), action.String())
		}
	})

	t.Run("analysis actions offer no content insertion", func(t *testing.T) {
		for _, action := range []ActionType{ActionAnalyze, ActionFindRelated, ActionSemanticSearch} {
			assert.False(t, action.Offers(FollowUpInsert), action.String())
			assert.False(t, action.Offers(FollowUpReplace), action.String())
		}
	})
}

func TestAllActions_Order(t *testing.T) {
	actions := AllActions()
	require.Len(t, actions, 11)
	assert.Equal(t, ActionGeneral, actions[0])
	assert.Equal(t, ActionSemanticSearch, actions[len(actions)-1])
}
