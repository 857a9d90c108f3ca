package scoring

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// CheckFilters evaluates filters as an AND. Any filter that fails makes the
// whole check fail, whatever its position. Otherwise, filters that cannot
// decide make the check undecided with the union of their missing fields.
// Unknown filter ids are logged and pass.
func (p *Project) CheckFilters(filters []string) Result {
	var missing []string
	for _, filter := range filters {
		model := p.registry.Get(filter)
		if model == nil {
			slog.Warn("filter is not implemented, letting it pass", "filter", filter, "project", p.details.ProjectID)
			continue
		}
		res := model.Score(p)
		switch res.Verdict() {
		case VerdictNotRelevant:
			return Scored(0)
		case VerdictInsufficientData:
			missing = append(missing, res.MissingFields...)
		}
	}
	if len(missing) > 0 {
		return NotEnoughData(missing...)
	}
	return Scored(StrongScore)
}

// FilterUsingScore yields the items whose filters all pass, keeping their
// order. Items with undecided filters are dropped.
func FilterUsingScore[T any](p *Project, items []T, filtersOf func(T) []string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !p.CheckFilters(filtersOf(item)).Passed() {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
