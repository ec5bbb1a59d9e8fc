package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/driftscan/drift/internal/scanconfig"
	"github.com/driftscan/drift/internal/scanerrors"
)

// CacheStore is the minimal persistence contract Scan depends on. It
// mirrors cachestore.Store without importing that package, avoiding an
// import cycle (cachestore imports scan for its row types).
type CacheStore interface {
	LoadAll(ctx context.Context) (map[string]CachedFileMetadata, error)
	Commit(ctx context.Context, upserts []CachedFileMetadata, deletes []string) error
}

// Scan runs a full scan: discovery, hashing, diffing, and a single
// committed write to store. It is the top-level entry point named in spec
// section 6.
func Scan(ctx context.Context, root string, cfg Config, store CacheStore, sink EventSink, token *CancelToken) (*ScanDiff, error) {
	sink = resolvedSink(sink)
	logger := scanconfig.NewLogger("scan")

	if err := cfg.Validate(); err != nil {
		sink.ScanError(err)
		return nil, err
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if token == nil {
		token = NewCancelToken()
	}

	ignorer, err := buildIgnorer(root, cfg)
	if err != nil {
		wrapped := scanerrors.IO("building ignore rules", err)
		sink.ScanError(wrapped)
		return nil, wrapped
	}

	sink.ScanStarted(root, nil)

	cached, err := store.LoadAll(ctx)
	if err != nil {
		wrapped := scanerrors.Storage("loading cache snapshot", err)
		sink.ScanError(wrapped)
		return nil, wrapped
	}

	discoveryStart := time.Now()
	candidates, walkStats, walkErrs, err := NewWalker().Discover(ctx, root, cfg, ignorer, token)
	if err != nil {
		wrapped := scanerrors.IO(fmt.Sprintf("discovering files under %s", root), err)
		sink.ScanError(wrapped)
		return nil, wrapped
	}
	discoveryMillis := time.Since(discoveryStart).Milliseconds()

	hashStart := time.Now()
	entries, hashErrs := NewHasher().Hash(ctx, candidates, cached, cfg, token, sink)
	hashMillis := time.Since(hashStart).Milliseconds()

	diffStart := time.Now()
	allErrs := append(append([]FileError{}, walkErrs...), hashErrs...)
	status := StatusComplete
	if token.Cancelled() {
		status = StatusPartial
	}
	diff := NewDiffer().Diff(entries, cached, cfg, walkStats, allErrs, timings{
		DiscoveryMillis: discoveryMillis,
		HashingMillis:   hashMillis,
	}, status)
	diff.Stats.DiffMillis = time.Since(diffStart).Milliseconds()

	if err := commitDiff(ctx, store, entries, diff, cached); err != nil {
		wrapped := scanerrors.Storage("committing cache snapshot", err)
		sink.ScanError(wrapped)
		return nil, wrapped
	}

	logger.Info("scan complete",
		"root", root,
		"added", len(diff.Added),
		"modified", len(diff.Modified),
		"removed", len(diff.Removed),
		"unchanged", len(diff.Unchanged),
		"status", diff.Status,
	)

	sink.ScanComplete(diff)
	return diff, nil
}

// commitDiff writes upserts for every successfully processed entry and
// deletes for every removed path, in a single call to store.Commit so the
// whole batch lands in one transaction (spec section 4.4). Entries that
// surfaced a hashing error are already absent from the added/modified/
// unchanged path sets and are therefore never written.
func commitDiff(ctx context.Context, store CacheStore, entries []ScanEntry, diff *ScanDiff, cached map[string]CachedFileMetadata) error {
	processed := make(map[string]bool, diff.TotalProcessed())
	for _, p := range diff.Added {
		processed[p] = true
	}
	for _, p := range diff.Modified {
		processed[p] = true
	}
	for _, p := range diff.Unchanged {
		processed[p] = true
	}

	upserts := make([]CachedFileMetadata, 0, len(entries))
	for _, e := range entries {
		if !processed[e.Path] {
			continue
		}
		fingerprint := e.Fingerprint
		if fingerprint == 0 {
			if row, ok := cached[e.Path]; ok {
				fingerprint = row.Fingerprint
			}
		}
		upserts = append(upserts, CachedFileMetadata{
			Path:        e.Path,
			Fingerprint: fingerprint,
			MTime:       e.MTime,
			Size:        e.Size,
			Language:    e.Language,
		})
	}

	return store.Commit(ctx, upserts, diff.Removed)
}

// buildIgnorer assembles the composite ignore chain: defaults, hierarchical
// .gitignore, hierarchical .driftignore, and extra-ignore patterns from
// cfg (spec section 4.1).
func buildIgnorer(root string, cfg Config) (Ignorer, error) {
	gitMatcher, err := NewGitignoreMatcher(root)
	if err != nil {
		return nil, err
	}
	driftMatcher, err := NewDriftignoreMatcher(root)
	if err != nil {
		return nil, err
	}

	return NewCompositeIgnorer(
		NewDefaultIgnoreMatcher(),
		gitMatcher,
		driftMatcher,
		NewExtraIgnoreMatcher(cfg.ExtraIgnore),
	), nil
}
