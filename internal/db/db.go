// Package db provides PostgreSQL storage for the content collections.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the content table. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS content_records (
    id          UUID PRIMARY KEY,
    import_id   UUID NOT NULL,
    collection  TEXT NOT NULL,
    sort_key    TEXT NOT NULL DEFAULT '',
    position    INTEGER NOT NULL,
    record      JSONB NOT NULL,
    imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS content_records_collection_idx
    ON content_records (collection, sort_key, position);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the content table if needed
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate content schema: %w", err)
	}
	return nil
}

// LoadCollection returns the records of a collection ordered by sort key,
// then by import order.
func (db *DB) LoadCollection(ctx context.Context, name string) ([]json.RawMessage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT record FROM content_records
		 WHERE collection = $1
		 ORDER BY sort_key, position`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", name, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan record of %s: %w", name, err)
		}
		records = append(records, json.RawMessage(record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	return records, nil
}

// ReplaceCollection atomically replaces every record of a collection.
func (db *DB) ReplaceCollection(ctx context.Context, name string, records []json.RawMessage) (*ImportResult, error) {
	rows := make([][]any, 0, len(records))
	importID := uuid.New()
	for i, record := range records {
		sortKey, err := sortKeyOf(record)
		if err != nil {
			return nil, fmt.Errorf("invalid record %d of %s: %w", i, name, err)
		}
		rows = append(rows, []any{uuid.New(), importID, name, sortKey, i, []byte(record)})
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx, name)

	tag, err := tx.Exec(ctx, `DELETE FROM content_records WHERE collection = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to clear collection %s: %w", name, err)
	}

	inserted, err := tx.CopyFrom(ctx,
		pgx.Identifier{"content_records"},
		[]string{"id", "import_id", "collection", "sort_key", "position", "record"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert records of %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &ImportResult{
		ImportID:   importID,
		Collection: name,
		Deleted:    int(tag.RowsAffected()),
		Inserted:   int(inserted),
	}, nil
}

// CountCollection returns the number of records in a collection
func (db *DB) CountCollection(ctx context.Context, name string) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM content_records WHERE collection = $1`,
		name,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", name, err)
	}
	return count, nil
}

// ListCollections returns the record count and last import of every stored collection
func (db *DB) ListCollections(ctx context.Context) ([]CollectionStats, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT collection, COUNT(*), MAX(imported_at)
		 FROM content_records
		 GROUP BY collection
		 ORDER BY collection`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var stats []CollectionStats
	for rows.Next() {
		var s CollectionStats
		if err := rows.Scan(&s.Collection, &s.Records, &s.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetLatestImport returns the last import of a collection, or nil if it was never imported
func (db *DB) GetLatestImport(ctx context.Context, name string) (*ImportInfo, error) {
	var info ImportInfo
	err := db.pool.QueryRow(ctx,
		`SELECT import_id, collection, imported_at
		 FROM content_records
		 WHERE collection = $1
		 ORDER BY imported_at DESC
		 LIMIT 1`,
		name,
	).Scan(&info.ImportID, &info.Collection, &info.ImportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest import of %s: %w", name, err)
	}
	return &info, nil
}

// sortKeyOf extracts the optional "sort_key" of a JSON object record.
func sortKeyOf(record json.RawMessage) (string, error) {
	var keyed struct {
		SortKey json.RawMessage `json:"sort_key"`
	}
	if err := json.Unmarshal(record, &keyed); err != nil {
		return "", fmt.Errorf("record must be a JSON object: %w", err)
	}
	if len(keyed.SortKey) == 0 || string(keyed.SortKey) == "null" {
		return "", nil
	}
	var key string
	if err := json.Unmarshal(keyed.SortKey, &key); err == nil {
		return key, nil
	}
	// Numeric sort keys are padded so that they sort as numbers.
	var number int64
	if err := json.Unmarshal(keyed.SortKey, &number); err != nil {
		return "", fmt.Errorf("sort_key must be a string or an integer")
	}
	return fmt.Sprintf("%020d", number), nil
}

// rollback ends a transaction that was not committed. After a commit it is a no-op.
func rollback(ctx context.Context, tx pgx.Tx, collection string) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("failed to roll back", "collection", collection, "error", err)
	}
}
