package db

import (
	"time"

	"github.com/google/uuid"
)

// ImportResult summarizes the replacement of a collection
type ImportResult struct {
	ImportID   uuid.UUID `json:"import_id"`
	Collection string    `json:"collection"`
	Deleted    int       `json:"deleted"`
	Inserted   int       `json:"inserted"`
}

// ImportInfo identifies the last import of a collection
type ImportInfo struct {
	ImportID   uuid.UUID `json:"import_id"`
	Collection string    `json:"collection"`
	ImportedAt time.Time `json:"imported_at"`
}

// CollectionStats describes a stored collection
type CollectionStats struct {
	Collection string    `json:"collection"`
	Records    int       `json:"records"`
	ImportedAt time.Time `json:"imported_at"`
}
