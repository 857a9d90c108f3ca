// Package diagnostic classifies a project's main challenges and assembles
// the diagnostic shown to the user.
package diagnostic

import "fmt"

// Error represents a failure to diagnose a project
type Error struct {
	ProjectID string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("diagnostic error for project %q: %s: %v", e.ProjectID, e.Message, e.Cause)
	}
	return fmt.Sprintf("diagnostic error for project %q: %s", e.ProjectID, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
