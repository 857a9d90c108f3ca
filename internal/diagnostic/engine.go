package diagnostic

import (
	"context"
	"time"

	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/scoring"
	"github.com/jonathan/bob-diagnostic/internal/types"
)

// Engine diagnoses projects against the content database.
// It is safe for concurrent use.
type Engine struct {
	db            *content.Database
	registry      *scoring.Registry
	now           func() time.Time
	defaultLocale string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock sets the clock used for ages and search lengths.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithDefaultLocale sets the locale of users without one.
func WithDefaultLocale(locale string) EngineOption {
	return func(e *Engine) {
		e.defaultLocale = locale
	}
}

// NewEngine creates an Engine. A nil registry uses the built-in models.
func NewEngine(db *content.Database, registry *scoring.Registry, opts ...EngineOption) *Engine {
	if registry == nil {
		registry = scoring.DefaultRegistry()
	}
	e := &Engine{
		db:            db,
		registry:      registry,
		now:           time.Now,
		defaultLocale: scoring.SourceLocale,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project creates the scoring view of a project for one evaluation.
func (e *Engine) Project(ctx context.Context, user *types.User, project *types.Project) *scoring.Project {
	return scoring.NewProject(ctx, project, user, e.db, e.registry,
		scoring.WithNow(e.now()),
		scoring.WithDefaultLocale(e.defaultLocale),
	)
}

// MaybeDiagnose diagnoses a complete project that has no diagnostic yet. It
// reports whether the project was diagnosed.
func (e *Engine) MaybeDiagnose(ctx context.Context, user *types.User, project *types.Project) (bool, error) {
	if project.IsIncomplete || project.Diagnostic != nil {
		return false, nil
	}
	if _, err := e.Diagnose(ctx, user, project); err != nil {
		return false, err
	}
	return true, nil
}

// Diagnose computes the project's diagnostic and sets it on the project.
// On error the project is left untouched.
func (e *Engine) Diagnose(ctx context.Context, user *types.User, project *types.Project) (*types.Diagnostic, error) {
	diagnostic, _, err := e.DiagnoseWithMissingFields(ctx, user, project)
	return diagnostic, err
}

// DiagnoseWithMissingFields is like Diagnose and also returns the project
// fields that would refine the diagnostic, most useful first.
func (e *Engine) DiagnoseWithMissingFields(ctx context.Context, user *types.User, project *types.Project) (*types.Diagnostic, []types.MissingField, error) {
	challenges, err := ListMainChallenges(ctx, e.db)
	if err != nil {
		return nil, nil, &Error{ProjectID: project.ProjectID, Message: "failed to read main challenges", Cause: err}
	}
	diagnostic, missing, err := diagnose(e.Project(ctx, user, project), challenges)
	if err != nil {
		return nil, nil, &Error{ProjectID: project.ProjectID, Message: "failed to assemble diagnostic", Cause: err}
	}
	project.Diagnostic = diagnostic
	return diagnostic, missing, nil
}

// QuickDiagnose comments on the fields the user just updated. It does not
// modify the project.
func (e *Engine) QuickDiagnose(ctx context.Context, user *types.User, project *types.Project, diff *types.UserDiff) *types.QuickDiagnostic {
	return quickDiagnose(e.Project(ctx, user, project), diff)
}

// MainChallengesRelevance classifies every main challenge against the project.
func (e *Engine) MainChallengesRelevance(ctx context.Context, user *types.User, project *types.Project, opts ...RelevanceOption) ([]ChallengeRelevance, error) {
	challenges, err := ListMainChallenges(ctx, e.db)
	if err != nil {
		return nil, &Error{ProjectID: project.ProjectID, Message: "failed to read main challenges", Cause: err}
	}
	var results []ChallengeRelevance
	for relevance, err := range SetMainChallengesRelevance(e.Project(ctx, user, project), challenges, opts...) {
		if err != nil {
			return nil, &Error{ProjectID: project.ProjectID, Message: "failed to classify main challenges", Cause: err}
		}
		results = append(results, relevance)
	}
	return results, nil
}
