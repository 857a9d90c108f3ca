package diagnostic

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/jonathan/bob-diagnostic/internal/scoring"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

// Self diagnostic statuses.
const (
	selfDiagnosticKnown     = "KNOWN_SELF_DIAGNOSTIC"
	selfDiagnosticUndefined = "UNDEFINED_SELF_DIAGNOSTIC"
	selfDiagnosticOther     = "OTHER_SELF_DIAGNOSTIC"
)

// diagnose computes a full diagnostic without touching the project. It also
// returns the fields worth asking the user about, most useful first.
func diagnose(p *scoring.Project, challenges []types.DiagnosticMainChallenge) (*types.Diagnostic, []types.MissingField, error) {
	diagnostic := &types.Diagnostic{}
	var missing []types.MissingField
	for relevance, err := range SetMainChallengesRelevance(p, challenges) {
		if err != nil {
			return nil, nil, err
		}
		diagnostic.Categories = append(diagnostic.Categories, relevance.Challenge)
		missing = mergeMissingFields(missing, relevance.MissingFields)
	}
	slices.SortStableFunc(missing, func(a, b types.MissingField) int {
		return a.Priority - b.Priority
	})

	main := findNeedingAttention(diagnostic.Categories)
	if main == nil {
		slog.Error("no main challenge needs attention", "project", p.Details().ProjectID, "categories", len(diagnostic.Categories))
		return diagnostic, missing, nil
	}
	diagnostic.CategoryID = main.CategoryID

	if err := computeOverall(p, diagnostic, main); err != nil {
		return nil, nil, err
	}
	return diagnostic, missing, nil
}

func findNeedingAttention(categories []types.DiagnosticMainChallenge) *types.DiagnosticMainChallenge {
	for i := range categories {
		if categories[i].Relevance == types.RelevanceNeedsAttention {
			return &categories[i]
		}
	}
	return nil
}

// computeOverall fills the diagnostic texts from the first overall template
// of the main challenge category whose filters pass.
func computeOverall(p *scoring.Project, diagnostic *types.Diagnostic, main *types.DiagnosticMainChallenge) error {
	templates, err := p.Database().DiagnosticTemplates(p.Context())
	if err != nil {
		return fmt.Errorf("failed to load overall templates: %w", err)
	}
	var candidates []types.DiagnosticTemplate
	for _, tpl := range templates {
		if tpl.CategoryID == main.CategoryID {
			candidates = append(candidates, tpl)
		}
	}

	var overall *types.DiagnosticTemplate
	for tpl := range scoring.FilterUsingScore(p, candidates, func(t types.DiagnosticTemplate) []string { return t.Filters }) {
		overall = &tpl
		break
	}
	if overall == nil {
		slog.Warn("no overall template for main challenge", "category", main.CategoryID, "project", p.Details().ProjectID)
		return nil
	}

	texts := []struct {
		field string
		value string
		dest  *string
	}{
		{"sentence_template", overall.SentenceTemplate, &diagnostic.OverallSentence},
		{"text_template", overall.TextTemplate, &diagnostic.Text},
		{"strategies_introduction", overall.StrategiesIntroduction, &diagnostic.StrategiesIntroduction},
	}
	for _, text := range texts {
		translated := p.TranslateAirtableString(tableOverall, overall.ID, text.field, text.value)
		populated, err := p.PopulateTemplate(translated)
		if err != nil {
			return fmt.Errorf("failed to populate %s of overall template %s: %w", text.field, overall.ID, err)
		}
		*text.dest = populated
	}
	diagnostic.OverallScore = overall.Score
	diagnostic.BobExplanation = main.BobExplanation

	response, err := computeResponse(p, main.CategoryID)
	if err != nil {
		return err
	}
	diagnostic.Response = response
	return nil
}

// computeResponse finds the sentence acknowledging how the user's own
// diagnostic compares to the computed one.
func computeResponse(p *scoring.Project, categoryID string) (string, error) {
	self := selfCategory(p.Details().OriginalSelfDiagnostic)
	if self == "" {
		return "", nil
	}
	responses, err := p.Database().DiagnosticResponses(p.Context())
	if err != nil {
		return "", fmt.Errorf("failed to load diagnostic responses: %w", err)
	}
	responseID := self + ":" + categoryID
	for _, response := range responses {
		if response.ResponseID == responseID {
			return p.TranslateAirtableString(tableResponses, responseID, "text", response.Text), nil
		}
	}
	return "", nil
}

func selfCategory(self *types.SelfDiagnostic) string {
	if self == nil {
		return ""
	}
	switch self.Status {
	case selfDiagnosticKnown:
		return self.CategoryID
	case selfDiagnosticUndefined:
		return "undefined"
	case selfDiagnosticOther:
		return "other"
	default:
		return ""
	}
}

// mergeMissingFields appends new fields, keeping the best priority of duplicates.
func mergeMissingFields(fields, added []types.MissingField) []types.MissingField {
	for _, field := range added {
		i := slices.IndexFunc(fields, func(f types.MissingField) bool { return f.Field == field.Field })
		if i < 0 {
			fields = append(fields, field)
			continue
		}
		if field.Priority < fields[i].Priority {
			fields[i].Priority = field.Priority
		}
	}
	return fields
}
