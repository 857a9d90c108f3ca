package types

// Relevance classifies a main challenge against a project
type Relevance string

// Relevance values, from the most blocking to the least
const (
	RelevanceUnknown         Relevance = ""
	RelevanceNeedsAttention  Relevance = "NEEDS_ATTENTION"
	RelevanceRelevantAndGood Relevance = "RELEVANT_AND_GOOD"
	RelevanceNeutral         Relevance = "NEUTRAL_RELEVANCE"
	RelevanceNotRelevant     Relevance = "NOT_RELEVANT"
)

// Rank orders relevances by how blocking they are: higher is more blocking.
func (r Relevance) Rank() int {
	switch r {
	case RelevanceNeedsAttention:
		return 4
	case RelevanceRelevantAndGood:
		return 3
	case RelevanceNeutral:
		return 2
	case RelevanceNotRelevant:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether r is one of the known relevance values
func (r Relevance) IsValid() bool {
	return r.Rank() > 0
}

// MissingField is a project field that would help decide a main challenge.
// Priority 1 fields were missing before the blocker was found and are the
// most useful to ask for.
type MissingField struct {
	Field    string `json:"field"`
	Priority int    `json:"priority"`
}
