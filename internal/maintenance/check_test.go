package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/scoring"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

func checkStore(t *testing.T, store content.Store) *Report {
	t.Helper()
	report, err := CheckContent(context.Background(), content.NewDatabase(store, nil), scoring.DefaultRegistry())
	require.NoError(t, err)
	return report
}

func validStore(t *testing.T) *content.MemoryStore {
	t.Helper()
	store := content.NewMemoryStore()
	require.NoError(t, store.Put(content.CollectionMainChallenges,
		types.DiagnosticMainChallenge{
			CategoryID:      "stuck-market",
			Order:           1,
			Filters:         []string{"for-low-market(6)", "not-for-departement(75)"},
			BlockerSentence: "Le marché est difficile %inCity.",
		},
		types.DiagnosticMainChallenge{
			CategoryID:            "enhance-methods",
			Order:                 2,
			RelevanceScoringModel: "for-few-interviews(2)",
		},
	))
	require.NoError(t, store.Put(content.CollectionOverall,
		types.DiagnosticTemplate{ID: "o1", CategoryID: "stuck-market", Score: 30, SentenceTemplate: "Pour %ofJobName"},
		types.DiagnosticTemplate{ID: "o2", CategoryID: "enhance-methods", Score: 60},
	))
	require.NoError(t, store.Put(content.CollectionResponses,
		types.DiagnosticResponse{ResponseID: "stuck-market:enhance-methods", Text: "Pas tout à fait."},
	))
	return store
}

func violationsOf(report *Report, violationType string) []Violation {
	var found []Violation
	for _, v := range report.Violations {
		if v.Type == violationType {
			found = append(found, v)
		}
	}
	return found
}

func TestCheckContent_Valid(t *testing.T) {
	report := checkStore(t, validStore(t))

	assert.True(t, report.OK())
	assert.Empty(t, report.Violations)
}

func TestCheckContent_Empty(t *testing.T) {
	report := checkStore(t, content.NewMemoryStore())

	assert.True(t, report.OK())
	assert.NotNil(t, report.Violations)
}

func TestCheckContent_Violations(t *testing.T) {
	tests := []struct {
		name         string
		collection   string
		records      []any
		wantType     string
		wantRecordID string
		wantField    string
		wantSeverity string
		wantOK       bool
	}{
		{
			name:       "unknown filter",
			collection: content.CollectionMainChallenges,
			records: []any{
				types.DiagnosticMainChallenge{CategoryID: "stuck-market", Filters: []string{"for-nobody"}},
				types.DiagnosticMainChallenge{CategoryID: "enhance-methods"},
			},
			wantType:     ViolationUnknownModel,
			wantRecordID: "stuck-market",
			wantField:    "filters",
			wantSeverity: SeverityError,
		},
		{
			name:       "unknown relevance model",
			collection: content.CollectionMainChallenges,
			records: []any{
				types.DiagnosticMainChallenge{CategoryID: "stuck-market"},
				types.DiagnosticMainChallenge{CategoryID: "enhance-methods", RelevanceScoringModel: "for-youngish(30)"},
			},
			wantType:     ViolationUnknownModel,
			wantRecordID: "enhance-methods",
			wantField:    "relevance_scoring_model",
			wantSeverity: SeverityError,
		},
		{
			name:       "duplicate category",
			collection: content.CollectionMainChallenges,
			records: []any{
				types.DiagnosticMainChallenge{CategoryID: "stuck-market"},
				types.DiagnosticMainChallenge{CategoryID: "enhance-methods"},
				types.DiagnosticMainChallenge{CategoryID: "stuck-market"},
			},
			wantType:     ViolationDuplicateID,
			wantRecordID: "stuck-market",
			wantSeverity: SeverityError,
		},
		{
			name:       "invalid record",
			collection: content.CollectionMainChallenges,
			records: []any{
				types.DiagnosticMainChallenge{CategoryID: "stuck-market"},
				types.DiagnosticMainChallenge{CategoryID: "enhance-methods"},
				types.DiagnosticMainChallenge{Order: 3},
			},
			wantType:     ViolationInvalidRecord,
			wantField:    "CategoryID",
			wantSeverity: SeverityError,
		},
		{
			name:       "unknown template variable",
			collection: content.CollectionOverall,
			records: []any{
				types.DiagnosticTemplate{ID: "o1", CategoryID: "stuck-market", TextTemplate: "Vous êtes %cityNam."},
				types.DiagnosticTemplate{ID: "o2", CategoryID: "enhance-methods"},
			},
			wantType:     ViolationUnknownVariable,
			wantRecordID: "o1",
			wantField:    "text_template",
			wantSeverity: SeverityError,
		},
		{
			name:       "unknown variable in challenge text",
			collection: content.CollectionMainChallenges,
			records: []any{
				types.DiagnosticMainChallenge{CategoryID: "stuck-market", MetricTitle: "Offres %inTown"},
				types.DiagnosticMainChallenge{CategoryID: "enhance-methods"},
			},
			wantType:     ViolationUnknownVariable,
			wantRecordID: "stuck-market",
			wantField:    "metric_title",
			wantSeverity: SeverityError,
		},
		{
			name:       "template of unknown category",
			collection: content.CollectionOverall,
			records: []any{
				types.DiagnosticTemplate{ID: "o1", CategoryID: "stuck-market"},
				types.DiagnosticTemplate{ID: "o2", CategoryID: "enhance-methods"},
				types.DiagnosticTemplate{ID: "o3", CategoryID: "bravo"},
			},
			wantType:     ViolationUnknownCategory,
			wantRecordID: "o3",
			wantField:    "category_id",
			wantSeverity: SeverityError,
		},
		{
			name:       "category without template",
			collection: content.CollectionOverall,
			records: []any{
				types.DiagnosticTemplate{ID: "o1", CategoryID: "stuck-market"},
			},
			wantType:     ViolationMissingTemplates,
			wantRecordID: "enhance-methods",
			wantSeverity: SeverityWarning,
			wantOK:       true,
		},
		{
			name:       "response to unknown category",
			collection: content.CollectionResponses,
			records: []any{
				types.DiagnosticResponse{ResponseID: "stuck-market:bravo"},
			},
			wantType:     ViolationUnknownCategory,
			wantRecordID: "stuck-market:bravo",
			wantField:    "response_id",
			wantSeverity: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := validStore(t)
			require.NoError(t, store.Put(tt.collection, tt.records...))

			report := checkStore(t, store)

			found := violationsOf(report, tt.wantType)
			require.Len(t, found, 1, "violations: %+v", report.Violations)
			assert.Equal(t, tt.collection, found[0].Collection)
			assert.Equal(t, tt.wantRecordID, found[0].RecordID)
			assert.Equal(t, tt.wantField, found[0].Field)
			assert.Equal(t, tt.wantSeverity, found[0].Severity)
			assert.NotEmpty(t, found[0].Details)
			assert.Equal(t, tt.wantOK, report.OK())
		})
	}
}

func TestCheckContent_VariablesReportedOnce(t *testing.T) {
	store := validStore(t)
	require.NoError(t, store.Put(content.CollectionOverall,
		types.DiagnosticTemplate{ID: "o1", CategoryID: "stuck-market", SentenceTemplate: "%nope et %nope"},
		types.DiagnosticTemplate{ID: "o2", CategoryID: "enhance-methods"},
	))

	report := checkStore(t, store)

	assert.Len(t, violationsOf(report, ViolationUnknownVariable), 1)
	assert.Equal(t, 1, report.Count(SeverityError))
}

type failingStore struct{}

func (failingStore) LoadCollection(context.Context, string) ([]json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func TestCheckContent_LoadError(t *testing.T) {
	_, err := CheckContent(context.Background(), content.NewDatabase(failingStore{}, nil), scoring.DefaultRegistry())

	var contentErr *content.Error
	require.ErrorAs(t, err, &contentErr)
	assert.Equal(t, content.CollectionMainChallenges, contentErr.Collection)
}
