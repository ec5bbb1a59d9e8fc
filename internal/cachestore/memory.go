package cachestore

import (
	"context"
	"sync"

	"github.com/driftscan/drift/internal/scan"
)

// MemoryStore is an in-process Store backed by a mutex-guarded map. It is
// used by tests that want Store semantics without a filesystem database.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]scan.CachedFileMetadata
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]scan.CachedFileMetadata)}
}

func (m *MemoryStore) LoadAll(ctx context.Context) (map[string]scan.CachedFileMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]scan.CachedFileMetadata, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Commit(ctx context.Context, upserts []scan.CachedFileMetadata, deletes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range upserts {
		m.rows[row.Path] = row
	}
	for _, path := range deletes {
		delete(m.rows, path)
	}
	return nil
}

func (m *MemoryStore) FindByHash(ctx context.Context, hash uint64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var paths []string
	for _, row := range m.rows {
		if row.Fingerprint == hash {
			paths = append(paths, row.Path)
		}
	}
	return paths, nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
