package content

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/jonathan/bob-diagnostic/internal/types"
	"golang.org/x/sync/errgroup"
)

// Collection names
const (
	CollectionMainChallenges = "diagnostic_main_challenges"
	CollectionOverall        = "diagnostic_overall"
	CollectionResponses      = "diagnostic_responses"
	CollectionJobGroupInfo   = "job_group_info"
	CollectionLocalDiagnosis = "local_diagnosis"
	CollectionDepartements   = "departements"
	CollectionRegions        = "regions"
	CollectionUsersCount     = "user_count"
	CollectionTranslations   = "translations"
)

// AllCollections lists every collection read by the engine
var AllCollections = []string{
	CollectionMainChallenges,
	CollectionOverall,
	CollectionResponses,
	CollectionJobGroupInfo,
	CollectionLocalDiagnosis,
	CollectionDepartements,
	CollectionRegions,
	CollectionUsersCount,
	CollectionTranslations,
}

// Store returns the raw JSON records of a named collection in their stored order.
type Store interface {
	LoadCollection(ctx context.Context, name string) ([]json.RawMessage, error)
}

// Database gives typed access to the content collections, loading each of them
// at most once per cache generation.
type Database struct {
	store Store
	cache *Cache
}

// NewDatabase creates a content database. A nil cache gets a cache without expiry.
func NewDatabase(store Store, cache *Cache) *Database {
	if cache == nil {
		cache = NewCache(0)
	}
	return &Database{store: store, cache: cache}
}

// ClearCache forgets every loaded collection.
func (d *Database) ClearCache() {
	d.cache.Clear()
}

// Warm loads every collection concurrently.
func (d *Database) Warm(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := d.MainChallenges(gCtx); return err })
	g.Go(func() error { _, err := d.DiagnosticTemplates(gCtx); return err })
	g.Go(func() error { _, err := d.DiagnosticResponses(gCtx); return err })
	g.Go(func() error { _, err := d.jobGroups(gCtx); return err })
	g.Go(func() error { _, err := d.localDiagnoses(gCtx); return err })
	g.Go(func() error { _, err := d.departements(gCtx); return err })
	g.Go(func() error { _, err := d.regions(gCtx); return err })
	g.Go(func() error { _, err := d.UsersCount(gCtx); return err })
	g.Go(func() error { _, err := d.translations(gCtx); return err })
	return g.Wait()
}

// MainChallenges returns the main challenges sorted by their order, keeping
// the stored order among equal values.
func (d *Database) MainChallenges(ctx context.Context) ([]types.DiagnosticMainChallenge, error) {
	v, err := d.cached(ctx, CollectionMainChallenges, func(raw []json.RawMessage) (any, error) {
		challenges, err := decodeAll[types.DiagnosticMainChallenge](CollectionMainChallenges, raw)
		if err != nil {
			return nil, err
		}
		slices.SortStableFunc(challenges, func(a, b types.DiagnosticMainChallenge) int {
			return a.Order - b.Order
		})
		return challenges, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.DiagnosticMainChallenge), nil
}

// DiagnosticTemplates returns the overall templates in their stored order.
func (d *Database) DiagnosticTemplates(ctx context.Context) ([]types.DiagnosticTemplate, error) {
	v, err := d.cached(ctx, CollectionOverall, func(raw []json.RawMessage) (any, error) {
		return decodeAll[types.DiagnosticTemplate](CollectionOverall, raw)
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.DiagnosticTemplate), nil
}

// DiagnosticResponses returns the response sentences in their stored order.
func (d *Database) DiagnosticResponses(ctx context.Context) ([]types.DiagnosticResponse, error) {
	v, err := d.cached(ctx, CollectionResponses, func(raw []json.RawMessage) (any, error) {
		return decodeAll[types.DiagnosticResponse](CollectionResponses, raw)
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.DiagnosticResponse), nil
}

// JobGroupInfo returns the info of a job group, or nil if unknown.
func (d *Database) JobGroupInfo(ctx context.Context, romeID string) (*types.JobGroupInfo, error) {
	index, err := d.jobGroups(ctx)
	if err != nil {
		return nil, err
	}
	return lookup(index, romeID), nil
}

// LocalDiagnosis returns the market statistics for "<departement>:<rome>", or nil if unknown.
func (d *Database) LocalDiagnosis(ctx context.Context, id string) (*types.LocalDiagnosis, error) {
	index, err := d.localDiagnoses(ctx)
	if err != nil {
		return nil, err
	}
	return lookup(index, id), nil
}

// Departement returns a département, or nil if unknown.
func (d *Database) Departement(ctx context.Context, id string) (*types.DepartementInfo, error) {
	index, err := d.departements(ctx)
	if err != nil {
		return nil, err
	}
	return lookup(index, id), nil
}

// Region returns a region, or nil if unknown.
func (d *Database) Region(ctx context.Context, id string) (*types.Region, error) {
	index, err := d.regions(ctx)
	if err != nil {
		return nil, err
	}
	return lookup(index, id), nil
}

// UsersCount returns the aggregated user counts, or nil if they were never computed.
func (d *Database) UsersCount(ctx context.Context) (*types.UsersCount, error) {
	v, err := d.cached(ctx, CollectionUsersCount, func(raw []json.RawMessage) (any, error) {
		counts, err := decodeAll[types.UsersCount](CollectionUsersCount, raw)
		if err != nil || len(counts) == 0 {
			return (*types.UsersCount)(nil), err
		}
		// The aggregation job writes a single document; the latest one wins.
		return &counts[len(counts)-1], nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.UsersCount), nil
}

// Translate returns the translation of a source string in a locale.
func (d *Database) Translate(ctx context.Context, source, locale string) (string, bool, error) {
	index, err := d.translations(ctx)
	if err != nil {
		return "", false, err
	}
	translation, ok := index[source]
	if !ok {
		return "", false, nil
	}
	text, ok := translation.Locales[locale]
	if !ok || text == "" {
		return "", false, nil
	}
	return text, true, nil
}

func (d *Database) jobGroups(ctx context.Context) (map[string]types.JobGroupInfo, error) {
	return cachedIndex(ctx, d, CollectionJobGroupInfo, func(r types.JobGroupInfo) string { return r.RomeID })
}

func (d *Database) localDiagnoses(ctx context.Context) (map[string]types.LocalDiagnosis, error) {
	return cachedIndex(ctx, d, CollectionLocalDiagnosis, func(r types.LocalDiagnosis) string { return r.ID })
}

func (d *Database) departements(ctx context.Context) (map[string]types.DepartementInfo, error) {
	return cachedIndex(ctx, d, CollectionDepartements, func(r types.DepartementInfo) string { return r.ID })
}

func (d *Database) regions(ctx context.Context) (map[string]types.Region, error) {
	return cachedIndex(ctx, d, CollectionRegions, func(r types.Region) string { return r.ID })
}

func (d *Database) translations(ctx context.Context) (map[string]types.Translation, error) {
	return cachedIndex(ctx, d, CollectionTranslations, func(r types.Translation) string { return r.String })
}

// cached returns the decoded collection, loading it from the store on a cache miss.
func (d *Database) cached(ctx context.Context, name string, decode func([]json.RawMessage) (any, error)) (any, error) {
	if v, ok := d.cache.Get(name); ok {
		return v, nil
	}

	generation := d.cache.Generation()
	raw, err := d.store.LoadCollection(ctx, name)
	if err != nil {
		return nil, &Error{Collection: name, Message: "failed to load", Cause: err}
	}
	v, err := decode(raw)
	if err != nil {
		return nil, err
	}
	d.cache.PutIfGeneration(name, v, generation)
	return v, nil
}

func cachedIndex[T any](ctx context.Context, d *Database, name string, key func(T) string) (map[string]T, error) {
	v, err := d.cached(ctx, name, func(raw []json.RawMessage) (any, error) {
		records, err := decodeAll[T](name, raw)
		if err != nil {
			return nil, err
		}
		index := make(map[string]T, len(records))
		for _, r := range records {
			index[key(r)] = r
		}
		return index, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]T), nil
}

func decodeAll[T any](name string, raw []json.RawMessage) ([]T, error) {
	records := make([]T, 0, len(raw))
	for i, r := range raw {
		var record T
		if err := json.Unmarshal(r, &record); err != nil {
			return nil, &Error{Collection: name, Message: "failed to decode record " + strconv.Itoa(i), Cause: err}
		}
		records = append(records, record)
	}
	return records, nil
}

func lookup[T any](index map[string]T, key string) *T {
	v, ok := index[key]
	if !ok {
		return nil
	}
	return &v
}
