package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used by tests and store-less CLI runs.
// Data is round-tripped through JSON on write so entries carry the same
// shapes a persistent store would return.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Store writes an entry under key, replacing any prior entry.
func (m *MemoryStore) Store(_ context.Context, key string, data any, source string) error {
	normalized, err := normalize(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Data: normalized, Metadata: newMetadata(source)}
	return nil
}

// Get returns the entry under key, or (nil, nil) when absent.
func (m *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Update shallow-merges fields into an existing entry's data, or stores the
// fields as a fresh entry when the key is absent.
func (m *MemoryStore) Update(ctx context.Context, key string, fields map[string]any, source string) error {
	existing, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return m.Store(ctx, key, fields, source)
	}
	return m.Store(ctx, key, mergeFields(existing.Data, fields), source)
}

// History returns the metadata snapshots recorded for key; at most the
// latest snapshot is retained.
func (m *MemoryStore) History(ctx context.Context, key string) ([]Metadata, error) {
	entry, err := m.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return []Metadata{}, nil
	}
	return []Metadata{entry.Metadata}, nil
}

// normalize round-trips data through JSON so stored values are plain maps,
// slices, and scalars regardless of the Go types written.
func normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry data: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry data: %w", err)
	}
	return normalized, nil
}
