package scan

import (
	"github.com/driftscan/drift/internal/scanerrors"
)

// DefaultMaxFileSize is the default maximum file size in bytes (1 MiB).
// Files strictly larger are skipped and counted in Stats.FilesSkippedLarge.
const DefaultMaxFileSize int64 = 1_048_576

// BinaryDetectionBytes is the number of leading bytes read from a candidate
// file to detect binary content, matching git's own heuristic.
const BinaryDetectionBytes = 8192

// DriftignoreFilename is the project-specific ignore filename honored in
// addition to the .gitignore family (spec section 6).
const DriftignoreFilename = ".driftignore"

// Config recognizes the options in spec section 3 (ScanConfig).
type Config struct {
	// MaxFileSize is the size threshold in bytes; files strictly larger are
	// skipped. Zero or a negative value is rejected by Validate; a caller
	// that wants no practical limit sets it to a very large number.
	MaxFileSize int64

	// ThreadCount is the worker pool size. Zero means auto-detect core count.
	ThreadCount int

	// ExtraIgnore is a list of doublestar glob patterns added on top of
	// defaults and hierarchical ignore files. Gitignore negation ("!") and
	// directory-only ("/" suffix) forms are not interpreted.
	ExtraIgnore []string

	// FollowSymlinks enables following symlinks (with cycle detection)
	// instead of skipping them outright.
	FollowSymlinks bool

	// ComputeHashes enables content hashing. When false, the Hasher is
	// bypassed and mtime-changed files are reported as modified without
	// content confirmation.
	ComputeHashes bool

	// ForceFullScan disables the mtime short-circuit, forcing every
	// candidate through the Hasher regardless of cache state.
	ForceFullScan bool

	// SkipBinary enables the null-byte binary sniff on the first 8KiB of
	// each candidate file.
	SkipBinary bool
}

// DefaultConfig returns a Config with the defaults spelled out in spec
// section 3: 1 MiB max file size, auto thread count, hashing and binary
// skipping enabled, symlink-following and force-full-scan disabled.
func DefaultConfig() Config {
	return Config{
		MaxFileSize:    DefaultMaxFileSize,
		ThreadCount:    0,
		ComputeHashes:  true,
		SkipBinary:     true,
		FollowSymlinks: false,
		ForceFullScan:  false,
	}
}

// Validate performs the fatal configuration checks from spec section 7:
// a zero-or-negative max file size, or a negative thread count, are both
// configuration errors that stop the scan before it starts.
func (c Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return scanerrors.Configf("max-file-size must be positive, got %d", c.MaxFileSize)
	}
	if c.ThreadCount < 0 {
		return scanerrors.Configf("thread-count must not be negative, got %d", c.ThreadCount)
	}
	return nil
}

// resolvedThreads returns the configured thread count, or runtime.NumCPU()
// when ThreadCount is zero (auto-detect).
func (c Config) resolvedThreads(numCPU int) int {
	if c.ThreadCount > 0 {
		return c.ThreadCount
	}
	return numCPU
}
