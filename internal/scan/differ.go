package scan

// Differ is phase 3 of the scanner: classifying the discovered entry set
// against a cached snapshot and emitting a ScanDiff (spec section 4.3).
type Differ struct{}

// NewDiffer constructs a Differ. Stateless; kept as a type for symmetry
// with Walker and Hasher and to leave room for future configuration.
func NewDiffer() *Differ {
	return &Differ{}
}

// timings carries the phase durations the orchestrator measured, folded
// into the returned ScanDiff.Stats.
type timings struct {
	DiscoveryMillis int64
	HashingMillis   int64
	DiffMillis      int64
}

// Diff classifies entries against cached and builds the resulting
// ScanDiff. walkStats and hashErrs/walkErrs feed the aggregate statistics
// and error list; status reflects whether the scan ran to completion or
// was cancelled mid-flight.
func (d *Differ) Diff(entries []ScanEntry, cached map[string]CachedFileMetadata, cfg Config, walkStats WalkStats, fileErrs []FileError, t timings, status Status) *ScanDiff {
	diff := &ScanDiff{
		Errors: append([]FileError{}, fileErrs...),
		Status: status,
	}

	languageBreakdown := make(map[string]int)
	var cacheHitCount int
	var totalBytes int64
	discoveredPaths := make(map[string]bool, len(entries))

	for _, e := range entries {
		discoveredPaths[e.Path] = true
		totalBytes += e.Size
		if e.Language != "" {
			languageBreakdown[e.Language]++
		}

		row, inCache := cached[e.Path]
		if !inCache {
			diff.Added = append(diff.Added, e.Path)
			continue
		}

		mtimeSame := row.MTime.Equal(e.MTime)

		if !cfg.ComputeHashes {
			if mtimeSame {
				diff.Unchanged = append(diff.Unchanged, e.Path)
				cacheHitCount++
			} else {
				diff.Modified = append(diff.Modified, e.Path)
			}
			continue
		}

		if mtimeSame {
			diff.Unchanged = append(diff.Unchanged, e.Path)
			cacheHitCount++
			continue
		}

		// mtime changed: compare fingerprints (e.CacheHit is false here
		// because the Hasher only marks a cache hit on mtime equality).
		if row.Fingerprint == e.Fingerprint {
			diff.Unchanged = append(diff.Unchanged, e.Path)
		} else {
			diff.Modified = append(diff.Modified, e.Path)
		}
	}

	for path := range cached {
		if !discoveredPaths[path] {
			diff.Removed = append(diff.Removed, path)
		}
	}

	processed := diff.TotalProcessed()
	var hitRatio float64
	if processed > 0 {
		hitRatio = float64(cacheHitCount) / float64(processed)
	}

	diff.Stats = Stats{
		TotalFiles:         processed,
		TotalBytes:         totalBytes,
		DiscoveryMillis:    t.DiscoveryMillis,
		HashingMillis:      t.HashingMillis,
		DiffMillis:         t.DiffMillis,
		CacheHitRatio:      hitRatio,
		FilesSkippedLarge:  walkStats.FilesSkippedLarge,
		FilesSkippedIgnore: walkStats.FilesSkippedIgnore,
		LanguageBreakdown:  languageBreakdown,
	}

	return diff
}
