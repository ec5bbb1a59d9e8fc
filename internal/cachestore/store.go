// Package cachestore implements the scanner's sole persistent side effect:
// the file_metadata snapshot described in spec section 6. All mutations
// for a single scan run inside one transaction, committed after the Differ
// completes and before Scan returns (spec section 4.4).
package cachestore

import (
	"context"

	"github.com/driftscan/drift/internal/scan"
)

// Store is the persistence contract the scanner depends on. Implementations
// must make LoadAll observe a consistent snapshot at scan start, and Commit
// must be all-or-nothing: a failure leaves the store unchanged.
type Store interface {
	// LoadAll returns every cached row, keyed by path.
	LoadAll(ctx context.Context) (map[string]scan.CachedFileMetadata, error)

	// Commit upserts the given rows and deletes the given paths inside a
	// single transaction. On error, the store is left exactly as it was
	// before the call (transactional rollback, spec section 4.4).
	Commit(ctx context.Context, upserts []scan.CachedFileMetadata, deletes []string) error

	// FindByHash returns every cached path whose fingerprint equals hash,
	// supporting downstream duplicate-content detection (spec section 6).
	FindByHash(ctx context.Context, hash uint64) ([]string, error)

	// Close releases any resources (file handles, locks) held by the store.
	Close() error
}
