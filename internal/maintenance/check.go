// Package maintenance validates the content collections offline, before they
// reach the diagnostic engine.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/scoring"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

// Violation types
const (
	ViolationInvalidRecord    = "invalid_record"
	ViolationUnknownModel     = "unknown_model"
	ViolationUnknownVariable  = "unknown_variable"
	ViolationDuplicateID      = "duplicate_id"
	ViolationUnknownCategory  = "unknown_category"
	ViolationMissingTemplates = "missing_templates"
)

// Severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation is a single problem found in a content record
type Violation struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Collection string `json:"collection"`
	RecordID   string `json:"record_id,omitempty"`
	Field      string `json:"field,omitempty"`
	Details    string `json:"details"`
}

// Report collects the violations of a content check
type Report struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether the content has no error. Warnings are allowed.
func (r *Report) OK() bool {
	return r.Count(SeverityError) == 0
}

// Count returns the number of violations of a severity.
func (r *Report) Count(severity string) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == severity {
			n++
		}
	}
	return n
}

func (r *Report) add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// CheckContent loads the diagnostic collections and checks that every record
// is valid, that every filter and relevance model resolves in the registry and
// that every template only uses known variables.
func CheckContent(ctx context.Context, db *content.Database, registry *scoring.Registry) (*Report, error) {
	challenges, err := db.MainChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load main challenges: %w", err)
	}
	templates, err := db.DiagnosticTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load overall templates: %w", err)
	}
	responses, err := db.DiagnosticResponses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	report := &Report{Violations: []Violation{}}
	categories := checkMainChallenges(report, registry, challenges)
	checkTemplates(report, registry, templates, categories)
	checkResponses(report, responses, categories)
	return report, nil
}

func checkMainChallenges(report *Report, registry *scoring.Registry, challenges []types.DiagnosticMainChallenge) map[string]bool {
	const collection = content.CollectionMainChallenges
	categories := make(map[string]bool, len(challenges))
	for _, c := range challenges {
		checkRecord(report, collection, c.CategoryID, c.Validate())
		if categories[c.CategoryID] {
			report.add(Violation{
				Type:       ViolationDuplicateID,
				Severity:   SeverityError,
				Collection: collection,
				RecordID:   c.CategoryID,
				Details:    "category is defined more than once",
			})
		}
		categories[c.CategoryID] = true

		checkModels(report, registry, collection, c.CategoryID, "filters", c.Filters)
		if c.RelevanceScoringModel != "" {
			checkModels(report, registry, collection, c.CategoryID, "relevance_scoring_model", []string{c.RelevanceScoringModel})
		}
		for _, field := range c.TextFields() {
			checkVariables(report, registry, collection, c.CategoryID, field.Name, *field.Value)
		}
	}
	return categories
}

func checkTemplates(report *Report, registry *scoring.Registry, templates []types.DiagnosticTemplate, categories map[string]bool) {
	const collection = content.CollectionOverall
	covered := map[string]bool{}
	for _, t := range templates {
		checkRecord(report, collection, t.ID, t.Validate())
		checkModels(report, registry, collection, t.ID, "filters", t.Filters)
		checkVariables(report, registry, collection, t.ID, "sentence_template", t.SentenceTemplate)
		checkVariables(report, registry, collection, t.ID, "text_template", t.TextTemplate)
		checkVariables(report, registry, collection, t.ID, "strategies_introduction", t.StrategiesIntroduction)

		if t.CategoryID != "" && !categories[t.CategoryID] {
			report.add(Violation{
				Type:       ViolationUnknownCategory,
				Severity:   SeverityError,
				Collection: collection,
				RecordID:   t.ID,
				Field:      "category_id",
				Details:    fmt.Sprintf("main challenge %q does not exist", t.CategoryID),
			})
		}
		covered[t.CategoryID] = true
	}

	var uncovered []string
	for category := range categories {
		if !covered[category] {
			uncovered = append(uncovered, category)
		}
	}
	slices.Sort(uncovered)
	for _, category := range uncovered {
		report.add(Violation{
			Type:       ViolationMissingTemplates,
			Severity:   SeverityWarning,
			Collection: collection,
			RecordID:   category,
			Details:    "main challenge has no overall template",
		})
	}
}

func checkResponses(report *Report, responses []types.DiagnosticResponse, categories map[string]bool) {
	const collection = content.CollectionResponses
	for _, r := range responses {
		checkRecord(report, collection, r.ResponseID, r.Validate())
		_, bobCategory, ok := strings.Cut(r.ResponseID, ":")
		if !ok || categories[bobCategory] {
			continue
		}
		report.add(Violation{
			Type:       ViolationUnknownCategory,
			Severity:   SeverityError,
			Collection: collection,
			RecordID:   r.ResponseID,
			Field:      "response_id",
			Details:    fmt.Sprintf("main challenge %q does not exist", bobCategory),
		})
	}
}

func checkRecord(report *Report, collection, id string, err error) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		report.add(Violation{Type: ViolationInvalidRecord, Severity: SeverityError, Collection: collection, RecordID: id, Details: err.Error()})
		return
	}
	for _, fe := range fieldErrs {
		report.add(Violation{
			Type:       ViolationInvalidRecord,
			Severity:   SeverityError,
			Collection: collection,
			RecordID:   id,
			Field:      fe.Field(),
			Details:    fmt.Sprintf("failed on %q", fe.Tag()),
		})
	}
}

func checkModels(report *Report, registry *scoring.Registry, collection, id, field string, ids []string) {
	var unknown *scoring.UnknownModelsError
	if !errors.As(registry.Validate(ids), &unknown) {
		return
	}
	for _, modelID := range unknown.IDs {
		report.add(Violation{
			Type:       ViolationUnknownModel,
			Severity:   SeverityError,
			Collection: collection,
			RecordID:   id,
			Field:      field,
			Details:    fmt.Sprintf("scoring model %q does not exist", modelID),
		})
	}
}

func checkVariables(report *Report, registry *scoring.Registry, collection, id, field, template string) {
	seen := map[string]bool{}
	for _, name := range scoring.TemplateVariables(template) {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := registry.Variable(name); ok {
			continue
		}
		report.add(Violation{
			Type:       ViolationUnknownVariable,
			Severity:   SeverityError,
			Collection: collection,
			RecordID:   id,
			Field:      field,
			Details:    fmt.Sprintf("template variable %q does not exist", name),
		})
	}
}
