// Package schemas holds the JSON Schemas of the CLI inputs.
package schemas

import "embed"

// Schema file names
const (
	DiagnosticRequest = "diagnostic_request.schema.json"
	ContentCollection = "content_collection.schema.json"
)

// Files contains every schema of this directory.
//
//go:embed *.schema.json
var Files embed.FS
