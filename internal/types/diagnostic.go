package types

import "github.com/go-playground/validator/v10"

// Diagnostic is the result of diagnosing a project
type Diagnostic struct {
	Categories             []DiagnosticMainChallenge `json:"categories"`
	CategoryID             string                    `json:"category_id,omitempty"`
	OverallScore           int                       `json:"overall_score,omitempty"`
	OverallSentence        string                    `json:"overall_sentence,omitempty"`
	Text                   string                    `json:"text,omitempty"`
	StrategiesIntroduction string                    `json:"strategies_introduction,omitempty"`
	Response               string                    `json:"response,omitempty"`
	BobExplanation         string                    `json:"bob_explanation,omitempty"`
}

// DiagnosticMainChallenge is a content-authored category of job-search obstacle or strength
type DiagnosticMainChallenge struct {
	CategoryID                string    `json:"category_id" validate:"required"`
	Order                     int       `json:"order"`
	Filters                   []string  `json:"filters,omitempty" validate:"dive,required"`
	RelevanceScoringModel     string    `json:"relevance_scoring_model,omitempty"`
	IsHighlighted             bool      `json:"is_highlighted,omitempty"`
	IsLastRelevant            bool      `json:"is_last_relevant,omitempty"`
	AreStrategiesForAlphaOnly bool      `json:"are_strategies_for_alpha_only,omitempty"`
	Relevance                 Relevance `json:"relevance,omitempty"`

	Description         string `json:"description,omitempty"`
	MetricTitle         string `json:"metric_title,omitempty"`
	MetricDetails       string `json:"metric_details,omitempty"`
	MetricNotReached    string `json:"metric_not_reached,omitempty"`
	MetricReached       string `json:"metric_reached,omitempty"`
	BlockerSentence     string `json:"blocker_sentence,omitempty"`
	OpportunitySentence string `json:"opportunity_sentence,omitempty"`
	BobExplanation      string `json:"bob_explanation,omitempty"`
}

// TextField is a named, user-facing text of a content record.
type TextField struct {
	Name  string
	Value *string
}

// TextFields lists the translatable texts of the challenge, keyed by their
// JSON names.
func (c *DiagnosticMainChallenge) TextFields() []TextField {
	return []TextField{
		{"description", &c.Description},
		{"metric_title", &c.MetricTitle},
		{"metric_details", &c.MetricDetails},
		{"metric_not_reached", &c.MetricNotReached},
		{"metric_reached", &c.MetricReached},
		{"blocker_sentence", &c.BlockerSentence},
		{"opportunity_sentence", &c.OpportunitySentence},
		{"bob_explanation", &c.BobExplanation},
	}
}

// DiagnosticTemplate is an "overall" sentence template for a main challenge category
type DiagnosticTemplate struct {
	ID                     string   `json:"id" validate:"required"`
	CategoryID             string   `json:"category_id" validate:"required"`
	Filters                []string `json:"filters,omitempty" validate:"dive,required"`
	Score                  int      `json:"score" validate:"gte=0,lte=100"`
	SentenceTemplate       string   `json:"sentence_template,omitempty"`
	TextTemplate           string   `json:"text_template,omitempty"`
	StrategiesIntroduction string   `json:"strategies_introduction,omitempty"`
}

// DiagnosticResponse acknowledges the gap between a self-diagnostic and Bob's diagnostic
type DiagnosticResponse struct {
	ResponseID string `json:"response_id" validate:"required,contains=:"`
	Text       string `json:"text"`
}

// QuickDiagnostic holds the comments shown while a user fills in their profile
type QuickDiagnostic struct {
	Comments []QuickComment `json:"comments"`
}

// QuickComment is a short comment attached to a profile field
type QuickComment struct {
	Field            string `json:"field"`
	IsBeforeQuestion bool   `json:"is_before_question,omitempty"`
	Comment          Text   `json:"comment"`
}

// Text is a sentence split in parts so that the UI can emphasize some of them
type Text struct {
	StringParts []string `json:"string_parts"`
}

// Profile fields commented by the quick diagnostic
const (
	FieldCity             = "CITY_FIELD"
	FieldTargetJob        = "TARGET_JOB_FIELD"
	FieldSalary           = "SALARY_FIELD"
	FieldRequestedDiploma = "REQUESTED_DIPLOMA_FIELD"
	FieldEmploymentType   = "EMPLOYMENT_TYPE_FIELD"
)

var contentValidator = validator.New()

// Validate validates the main challenge content record.
func (c *DiagnosticMainChallenge) Validate() error {
	return contentValidator.Struct(c)
}

// Validate validates the overall template content record.
func (t *DiagnosticTemplate) Validate() error {
	return contentValidator.Struct(t)
}

// Validate validates the response content record.
func (r *DiagnosticResponse) Validate() error {
	return contentValidator.Struct(r)
}

// Validate validates the user profile.
func (p *UserProfile) Validate() error {
	return contentValidator.Struct(p)
}
