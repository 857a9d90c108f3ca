package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/bob-diagnostic/internal/schemas"
	"github.com/jonathan/bob-diagnostic/internal/types"
	schemafiles "github.com/jonathan/bob-diagnostic/schemas"
)

// request is the JSON input of the diagnose and quick-diagnose commands
type request struct {
	User    types.User      `json:"user"`
	Project types.Project   `json:"project"`
	Diff    *types.UserDiff `json:"diff,omitempty"`
}

// readRequest reads and validates a request from path, or from stdin when
// path is empty or "-". Projects without an id get a new one.
func readRequest(stdin io.Reader, path string) (*request, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}

	if err := schemas.ValidateDocument(schemafiles.DiagnosticRequest, data); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}
	if err := req.User.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user profile: %w", err)
	}

	if req.Project.ProjectID == "" {
		req.Project.ProjectID = uuid.NewString()
	}
	return &req, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
