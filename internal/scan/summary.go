package scan

// ExposedSummary is the aggregate-only view that crosses a foreign-function
// boundary when the scanner is embedded behind one (spec section 6): full
// path lists stay in the cache store, only counts and totals cross.
type ExposedSummary struct {
	AddedCount     int
	ModifiedCount  int
	RemovedCount   int
	UnchangedCount int
	TotalBytes     int64
	DurationMillis int64
	Status         Status
	LanguageCounts map[string]int
}

// BuildSummary derives an ExposedSummary from a completed ScanDiff.
func BuildSummary(diff *ScanDiff) ExposedSummary {
	return ExposedSummary{
		AddedCount:     len(diff.Added),
		ModifiedCount:  len(diff.Modified),
		RemovedCount:   len(diff.Removed),
		UnchangedCount: len(diff.Unchanged),
		TotalBytes:     diff.Stats.TotalBytes,
		DurationMillis: diff.Stats.DiscoveryMillis + diff.Stats.HashingMillis + diff.Stats.DiffMillis,
		Status:         diff.Status,
		LanguageCounts: diff.Stats.LanguageBreakdown,
	}
}
