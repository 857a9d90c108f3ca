// Package scoring evaluates named, parameterized scoring models and filters
// against a user's job-search project.
package scoring

import (
	"slices"
)

// StrongScore is the conventional score of a model that is clearly relevant.
const StrongScore = 3

// Verdict is the outcome class of a scoring model evaluation
type Verdict int

// Verdicts
const (
	VerdictNotRelevant Verdict = iota
	VerdictRelevant
	VerdictInsufficientData
)

func (v Verdict) String() string {
	switch v {
	case VerdictRelevant:
		return "relevant"
	case VerdictInsufficientData:
		return "insufficient data"
	default:
		return "not relevant"
	}
}

// Result is the outcome of a scoring model: either a score (relevant iff > 0)
// or a set of missing project fields without which the model cannot decide.
type Result struct {
	Score         float64
	MissingFields []string
}

// Scored returns a decided result.
func Scored(score float64) Result {
	return Result{Score: score}
}

// NotEnoughData returns an undecided result. Fields are deduplicated and sorted.
func NotEnoughData(fields ...string) Result {
	missing := slices.Clone(fields)
	slices.Sort(missing)
	missing = slices.Compact(missing)
	if len(missing) == 0 {
		missing = []string{"unknown"}
	}
	return Result{MissingFields: missing}
}

// Verdict classifies the result.
func (r Result) Verdict() Verdict {
	switch {
	case len(r.MissingFields) > 0:
		return VerdictInsufficientData
	case r.Score > 0:
		return VerdictRelevant
	default:
		return VerdictNotRelevant
	}
}

// Passed reports whether the result is decided and relevant.
func (r Result) Passed() bool {
	return r.Verdict() == VerdictRelevant
}

// Err returns a *NotEnoughDataError for undecided results, nil otherwise.
func (r Result) Err() error {
	if r.Verdict() != VerdictInsufficientData {
		return nil
	}
	return &NotEnoughDataError{Fields: r.MissingFields}
}

func scoreIf(condition bool) Result {
	if condition {
		return Scored(StrongScore)
	}
	return Scored(0)
}
