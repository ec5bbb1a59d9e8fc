package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/driftscan/drift/internal/scanconfig"
)

// progressInterval is how often, in successful completions, the Hasher
// invokes the event sink's progress callback (spec section 4.2).
const progressInterval = 100

// Hasher is phase 2 of the scanner: content hashing and metadata
// collection via the two-level mtime→hash strategy (spec section 4.2).
type Hasher struct {
	logger *slog.Logger
}

// NewHasher constructs a Hasher with a component-scoped logger.
func NewHasher() *Hasher {
	return &Hasher{logger: scanconfig.NewLogger("hasher")}
}

// Hash turns candidates into ScanEntries. For each candidate it first
// consults cached for a cache hit (identical mtime, ForceFullScan false);
// otherwise it reads the file and computes its xxh3-64 fingerprint, unless
// cfg.ComputeHashes is false, in which case hashing is bypassed entirely
// and the fingerprint is left zero. Reads run across a bounded worker pool
// sized to cfg.ThreadCount, polling token before each file (spec section
// 4.2, "Parallelism").
func (h *Hasher) Hash(ctx context.Context, candidates []Candidate, cached map[string]CachedFileMetadata, cfg Config, token *CancelToken, sink EventSink) ([]ScanEntry, []FileError) {
	sink = resolvedSink(sink)
	threads := cfg.resolvedThreads(runtime.NumCPU())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	entries := make([]ScanEntry, len(candidates))
	valid := make([]bool, len(candidates))
	var errs []FileError
	var errMu sync.Mutex
	var processed int64
	total := len(candidates)

	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			if token != nil && token.Cancelled() {
				return nil
			}

			entry, err := h.hashOne(cand, cached, cfg)
			if err != nil {
				errMu.Lock()
				errs = append(errs, FileError{Path: cand.Path, Err: err})
				errMu.Unlock()
				return nil
			}

			entries[i] = entry
			valid[i] = true

			n := atomic.AddInt64(&processed, 1)
			if n%progressInterval == 0 {
				sink.ScanProgress(int(n), total)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]ScanEntry, 0, len(entries))
	for i, ok := range valid {
		if ok {
			out = append(out, entries[i])
		}
	}

	return out, errs
}

func (h *Hasher) hashOne(cand Candidate, cached map[string]CachedFileMetadata, cfg Config) (ScanEntry, error) {
	entry := ScanEntry{
		Path:     cand.Path,
		MTime:    cand.MTime,
		Size:     cand.Size,
		Language: DetectLanguage(cand.Path),
	}

	if row, ok := cached[cand.Path]; ok && !cfg.ForceFullScan && row.MTime.Equal(cand.MTime) {
		entry.Fingerprint = row.Fingerprint
		entry.CacheHit = true
		return entry, nil
	}

	if !cfg.ComputeHashes {
		return entry, nil
	}

	data, err := os.ReadFile(cand.AbsPath)
	if err != nil {
		return ScanEntry{}, fmt.Errorf("reading %s: %w", cand.Path, err)
	}

	entry.Fingerprint = xxh3.Hash(data)
	return entry, nil
}
