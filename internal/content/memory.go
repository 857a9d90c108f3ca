package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store, used by tests and by the CLI when
// content is read from JSON files instead of a database.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
	loads       map[string]int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]json.RawMessage),
		loads:       make(map[string]int),
	}
}

// Put replaces a collection with the JSON encoding of records.
func (m *MemoryStore) Put(name string, records ...any) error {
	raw := make([]json.RawMessage, 0, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record %d of %s: %w", i, name, err)
		}
		raw = append(raw, b)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[name] = raw
	return nil
}

// PutRaw replaces a collection with already encoded records.
func (m *MemoryStore) PutRaw(name string, records []json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[name] = records
}

// LoadCollection implements Store. Unknown collections are empty.
func (m *MemoryStore) LoadCollection(_ context.Context, name string) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads[name]++
	return m.collections[name], nil
}

// Loads returns how many times a collection was read from the store.
func (m *MemoryStore) Loads(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads[name]
}
