package scoring

import (
	"fmt"
	"strings"
)

// NotEnoughDataError signals that a model cannot decide without more project data.
// It is not a failure: callers fall back to a neutral default or ask the user.
type NotEnoughDataError struct {
	Fields []string
}

func (e *NotEnoughDataError) Error() string {
	return fmt.Sprintf("not enough data to score, missing: %s", strings.Join(e.Fields, ", "))
}

// TemplateError indicates a content template references unknown variables
type TemplateError struct {
	Template  string
	Variables []string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q has unknown variables: %s", e.Template, strings.Join(e.Variables, ", "))
}

// UnknownModelsError lists model ids that the registry cannot resolve
type UnknownModelsError struct {
	IDs []string
}

func (e *UnknownModelsError) Error() string {
	return fmt.Sprintf("unknown scoring models: %s", strings.Join(e.IDs, ", "))
}
