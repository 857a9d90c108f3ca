package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevance_Rank(t *testing.T) {
	ordered := []Relevance{
		RelevanceNeedsAttention,
		RelevanceRelevantAndGood,
		RelevanceNeutral,
		RelevanceNotRelevant,
		RelevanceUnknown,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i-1].Rank(), ordered[i].Rank(),
			"%s should be more blocking than %s", ordered[i-1], ordered[i])
	}
}

func TestRelevance_IsValid(t *testing.T) {
	tests := []struct {
		name      string
		relevance Relevance
		expected  bool
	}{
		{"needs attention", RelevanceNeedsAttention, true},
		{"neutral", RelevanceNeutral, true},
		{"unknown", RelevanceUnknown, false},
		{"garbage", Relevance("SOMETIMES"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.relevance.IsValid())
		})
	}
}

func TestDiagnosticMainChallenge_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"category_id": "stuck-market",
		"order": 3,
		"filters": ["for-low-market(4)", "not-for-young(25)"],
		"relevance_scoring_model": "for-long-search(6)",
		"is_last_relevant": true,
		"blocker_sentence": "Le marché est tendu %inCity."
	}`

	var challenge DiagnosticMainChallenge
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &challenge))

	assert.Equal(t, "stuck-market", challenge.CategoryID)
	assert.Equal(t, 3, challenge.Order)
	assert.Equal(t, []string{"for-low-market(4)", "not-for-young(25)"}, challenge.Filters)
	assert.Equal(t, "for-long-search(6)", challenge.RelevanceScoringModel)
	assert.True(t, challenge.IsLastRelevant)
	assert.False(t, challenge.IsHighlighted)
	assert.Equal(t, RelevanceUnknown, challenge.Relevance)
}
