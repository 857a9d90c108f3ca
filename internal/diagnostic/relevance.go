package diagnostic

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/scoring"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

// Translation tables of the content collections.
const (
	tableMainChallenges = "diagnosticMainChallenges"
	tableOverall        = "diagnosticOverall"
	tableResponses      = "diagnosticResponses"
)

// ChallengeRelevance is a translated main challenge with its resolved
// relevance, and the project fields that would help decide it.
type ChallengeRelevance struct {
	Challenge     types.DiagnosticMainChallenge `json:"challenge"`
	MissingFields []types.MissingField          `json:"missing_fields,omitempty"`
}

type relevanceOptions struct {
	highlightFirstBlocker bool
}

// RelevanceOption configures SetMainChallengesRelevance.
type RelevanceOption func(*relevanceOptions)

// WithoutFirstBlockerHighlight keeps the authored is_highlighted flags instead
// of highlighting only the first blocker.
func WithoutFirstBlockerHighlight() RelevanceOption {
	return func(o *relevanceOptions) {
		o.highlightFirstBlocker = false
	}
}

// ListMainChallenges returns the main challenges in their authored order.
func ListMainChallenges(ctx context.Context, db *content.Database) ([]types.DiagnosticMainChallenge, error) {
	challenges, err := db.MainChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list main challenges: %w", err)
	}
	return challenges, nil
}

// TranslateMainChallenge translates the texts of a main challenge for the
// project's user and expands their %variables. The challenge passed in is not
// modified.
func TranslateMainChallenge(challenge types.DiagnosticMainChallenge, p *scoring.Project) (types.DiagnosticMainChallenge, error) {
	for _, field := range challenge.TextFields() {
		if *field.Value == "" {
			continue
		}
		translated := p.TranslateAirtableString(tableMainChallenges, challenge.CategoryID, field.Name, *field.Value)
		populated, err := p.PopulateTemplate(translated)
		if err != nil {
			return types.DiagnosticMainChallenge{}, fmt.Errorf("failed to populate %s of main challenge %s: %w", field.Name, challenge.CategoryID, err)
		}
		*field.Value = populated
	}
	challenge.Filters = slices.Clone(challenge.Filters)
	return challenge, nil
}

// SetMainChallengesRelevance classifies main challenges, in the given order,
// against the project. Challenges reserved to alpha users are skipped for
// other users.
//
// The first challenge that needs attention is highlighted and every later
// one loses its highlight and blocker sentence. Once a challenge flagged
// is_last_relevant needs attention, the following ones can only be neutral
// or not relevant.
//
// A challenge whose texts cannot be populated yields its error and ends the
// sequence.
func SetMainChallengesRelevance(p *scoring.Project, challenges []types.DiagnosticMainChallenge, opts ...RelevanceOption) iter.Seq2[ChallengeRelevance, error] {
	options := relevanceOptions{highlightFirstBlocker: true}
	for _, opt := range opts {
		opt(&options)
	}

	return func(yield func(ChallengeRelevance, error) bool) {
		blockerFound := false
		shouldBeNeutral := false
		for _, challenge := range challenges {
			if challenge.AreStrategiesForAlphaOnly && !p.FeaturesEnabled().Alpha {
				continue
			}
			translated, err := TranslateMainChallenge(challenge, p)
			if err != nil {
				yield(ChallengeRelevance{}, err)
				return
			}
			relevance, missing := classify(p, challenge, shouldBeNeutral)
			translated.Relevance = relevance

			if relevance == types.RelevanceNeedsAttention {
				if options.highlightFirstBlocker {
					translated.IsHighlighted = !blockerFound
					if blockerFound {
						translated.BlockerSentence = ""
					}
				}
				blockerFound = true
				if challenge.IsLastRelevant {
					shouldBeNeutral = true
				}
			} else if options.highlightFirstBlocker {
				translated.IsHighlighted = false
			}

			priority := 1
			if blockerFound {
				priority = 2
			}
			fields := make([]types.MissingField, 0, len(missing))
			for _, field := range missing {
				fields = append(fields, types.MissingField{Field: field, Priority: priority})
			}

			if !yield(ChallengeRelevance{Challenge: translated, MissingFields: fields}, nil) {
				return
			}
		}
	}
}

// classify resolves the relevance of one challenge. Filters decide whether it
// needs attention; otherwise the relevance scoring model tells strengths apart.
func classify(p *scoring.Project, challenge types.DiagnosticMainChallenge, shouldBeNeutral bool) (types.Relevance, []string) {
	var missing []string
	filters := p.CheckFilters(challenge.Filters)
	switch filters.Verdict() {
	case scoring.VerdictRelevant:
		if shouldBeNeutral {
			return types.RelevanceNeutral, nil
		}
		return types.RelevanceNeedsAttention, nil
	case scoring.VerdictInsufficientData:
		missing = filters.MissingFields
	}

	if challenge.RelevanceScoringModel == "" {
		if len(missing) > 0 || shouldBeNeutral {
			return types.RelevanceNeutral, missing
		}
		return types.RelevanceRelevantAndGood, nil
	}

	res := p.ScoreResult(challenge.RelevanceScoringModel)
	switch {
	case res.Verdict() == scoring.VerdictInsufficientData:
		return types.RelevanceNeutral, scoring.NotEnoughData(slices.Concat(missing, res.MissingFields)...).MissingFields
	case res.Score <= 0:
		return types.RelevanceNotRelevant, missing
	case res.Score >= scoring.StrongScore && !shouldBeNeutral:
		return types.RelevanceRelevantAndGood, missing
	default:
		return types.RelevanceNeutral, missing
	}
}

// FindMainChallenge returns the first challenge that needs attention, or nil.
func FindMainChallenge(relevances iter.Seq2[ChallengeRelevance, error]) (*types.DiagnosticMainChallenge, error) {
	for relevance, err := range relevances {
		if err != nil {
			return nil, err
		}
		if relevance.Challenge.Relevance == types.RelevanceNeedsAttention {
			challenge := relevance.Challenge
			return &challenge, nil
		}
	}
	return nil, nil
}
