package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonathan/bob-diagnostic/internal/config"
	"github.com/jonathan/bob-diagnostic/internal/content"
	"github.com/jonathan/bob-diagnostic/internal/db"
	"github.com/jonathan/bob-diagnostic/internal/diagnostic"
	"github.com/jonathan/bob-diagnostic/internal/schemas"
	schemafiles "github.com/jonathan/bob-diagnostic/schemas"
)

// openContent returns the content database, read from --content-dir when set
// and from PostgreSQL otherwise. The returned func releases its resources.
func (a *app) openContent(ctx context.Context) (*content.Database, func(), error) {
	ttl, err := a.cfg.CacheTTL()
	if err != nil {
		return nil, nil, err
	}
	cache := content.NewCache(ttl)

	var (
		store   content.Store
		release = func() {}
	)
	if a.contentDir != "" {
		memory, err := loadContentDir(a.contentDir)
		if err != nil {
			return nil, nil, err
		}
		store = memory
	} else {
		database, err := a.connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		store, release = database, database.Close
	}

	contentDB := content.NewDatabase(store, cache)
	if a.cfg.WarmCache {
		if err := contentDB.Warm(ctx); err != nil {
			release()
			return nil, nil, fmt.Errorf("failed to warm content cache: %w", err)
		}
		slog.Debug("content cache warmed", "collections", len(content.AllCollections))
	}
	return contentDB, release, nil
}

func (a *app) engine(contentDB *content.Database) *diagnostic.Engine {
	return diagnostic.NewEngine(contentDB, nil, diagnostic.WithDefaultLocale(a.cfg.DefaultLocale))
}

// connect opens the content database and makes sure its schema exists.
func (a *app) connect(ctx context.Context) (*db.DB, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%s is required (or use --content-dir)", config.EnvDatabaseURL)
	}
	database, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// loadContentDir reads every known collection from <dir>/<collection>.json.
// Missing files are empty collections.
func loadContentDir(dir string) (*content.MemoryStore, error) {
	store := content.NewMemoryStore()
	for _, name := range content.AllCollections {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read collection file: %w", err)
		}
		records, err := decodeCollection(data)
		if err != nil {
			return nil, fmt.Errorf("invalid collection file %s: %w", path, err)
		}
		store.PutRaw(name, records)
		slog.Debug("collection loaded", "collection", name, "records", len(records))
	}
	return store, nil
}

// decodeCollection splits a JSON array of content records.
func decodeCollection(data []byte) ([]json.RawMessage, error) {
	if err := schemas.ValidateDocument(schemafiles.ContentCollection, data); err != nil {
		return nil, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse collection JSON: %w", err)
	}
	return records, nil
}
