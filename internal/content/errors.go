package content

import "fmt"

// Error represents a failure to load or decode a content collection
type Error struct {
	Collection string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("collection %s: %s: %v", e.Collection, e.Message, e.Cause)
	}
	return fmt.Sprintf("collection %s: %s", e.Collection, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
