// Package scan implements the two-phase incremental filesystem scanner:
// parallel discovery with hierarchical ignore-rule evaluation, content
// addressed incremental detection via a two-level mtime→hash strategy, and
// cancellable parallel processing that hands results to a persistent
// metadata store.
package scan

// MTime is the filesystem modification time of a file, split into seconds
// and a sub-second nanosecond component so exact equality is possible
// without floating-point drift (spec section 4.4).
type MTime struct {
	Secs  int64
	Nanos int32
}

// Equal reports whether two MTime values are bit-identical.
func (m MTime) Equal(other MTime) bool {
	return m.Secs == other.Secs && m.Nanos == other.Nanos
}

// ScanEntry represents one observed file during the current scan. The
// Hasher builds it from a Walker Candidate and populates its Fingerprint
// (or inherits it from the cache on a cache hit). Immutable once the
// Differ runs.
type ScanEntry struct {
	// Path is root-relative, using forward slashes, and is the entry's identity.
	Path string

	// Fingerprint is the 64-bit content fingerprint (xxh3-64), or zero when
	// ComputeHashes is disabled and the entry was never hashed.
	Fingerprint uint64

	// MTime is the filesystem modification time observed during discovery.
	MTime MTime

	// Size is the file size in bytes.
	Size int64

	// Language is the detected language tag, or "" when the extension is
	// unrecognized.
	Language string

	// CacheHit records whether the Fingerprint was inherited from the cache
	// via the mtime short-circuit, rather than freshly computed.
	CacheHit bool
}

// CachedFileMetadata is one row of the persisted snapshot, keyed by Path.
type CachedFileMetadata struct {
	Path          string
	Fingerprint   uint64
	MTime         MTime
	Size          int64
	Language      string
	LastIndexedAt int64 // unix seconds, advisory
}

// Status describes how a scan terminated.
type Status string

const (
	// StatusComplete means every discovered candidate was processed.
	StatusComplete Status = "complete"

	// StatusPartial means the scan was cancelled mid-flight; the diff
	// reflects only the work that completed before cancellation.
	StatusPartial Status = "partial"
)

// FileError records a non-fatal per-path failure. The affected path is
// omitted from all four ScanDiff path sets.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Stats carries the aggregate statistics a ScanDiff reports (spec section 3).
type Stats struct {
	TotalFiles         int
	TotalBytes         int64
	DiscoveryMillis    int64
	HashingMillis      int64
	DiffMillis         int64
	CacheHitRatio      float64
	FilesSkippedLarge  int
	FilesSkippedIgnore int
	LanguageBreakdown  map[string]int
}

// ScanDiff is the scanner's output: four disjoint path sets plus a per-file
// error list and aggregate statistics.
type ScanDiff struct {
	Added     []string
	Modified  []string
	Removed   []string
	Unchanged []string

	Errors []FileError
	Stats  Stats
	Status Status
}

// TotalProcessed returns |Added ∪ Modified ∪ Unchanged|, the count of
// discovered candidates that were successfully classified (invariant 2).
func (d *ScanDiff) TotalProcessed() int {
	return len(d.Added) + len(d.Modified) + len(d.Unchanged)
}
