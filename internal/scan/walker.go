package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/driftscan/drift/internal/scanconfig"
)

// Candidate is a file discovered by the Walker: a path survived ignore
// evaluation, size filtering, and (optionally) binary sniffing, and is
// ready for the Hasher (spec section 4.1).
type Candidate struct {
	Path    string
	AbsPath string
	MTime   MTime
	Size    int64
}

// WalkStats is the aggregate discovery-phase counters the Differ folds
// into ScanDiff.Stats.
type WalkStats struct {
	TotalFound         int
	FilesSkippedLarge  int
	FilesSkippedIgnore int
}

// Walker is phase 1 of the scanner: parallel discovery, ignore evaluation,
// and size/binary filtering (spec section 4.1).
type Walker struct {
	logger *slog.Logger
}

// NewWalker constructs a Walker with a component-scoped logger.
func NewWalker() *Walker {
	return &Walker{logger: scanconfig.NewLogger("walker")}
}

// Discover traverses root, applying the composite ignore chain and size
// and binary filters, and returns the surviving candidates plus per-path
// errors. Directory enumeration uses filepath.WalkDir (single-threaded,
// matching the kernel-level serialization many filesystems impose per spec
// section 4.1); per-file stat/binary-sniff work fans out across a bounded
// errgroup pool, honoring cfg.ThreadCount.
func (w *Walker) Discover(ctx context.Context, root string, cfg Config, ignorer Ignorer, token *CancelToken) ([]Candidate, WalkStats, []FileError, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, WalkStats{}, nil, fmt.Errorf("resolving root path %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, WalkStats{}, nil, fmt.Errorf("stat root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, WalkStats{}, nil, fmt.Errorf("root %s is not a directory", absRoot)
	}

	threads := cfg.resolvedThreads(runtime.NumCPU())

	type rawEntry struct {
		relPath string
		absPath string
		isDir   bool
		symlink bool
	}

	var mu sync.Mutex
	var rawEntries []rawEntry
	stats := WalkStats{}
	symResolver := newSymlinkResolver()

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if token != nil && token.Cancelled() {
			return fs.SkipAll
		}

		if walkErr != nil {
			w.logger.Debug("walk error", "path", path, "error", walkErr)
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		isDir := d.IsDir()
		if isDir && d.Name() == ".git" {
			return fs.SkipDir
		}

		isSymlink := d.Type()&os.ModeSymlink != 0
		absPath := path

		if isSymlink {
			if !cfg.FollowSymlinks {
				mu.Lock()
				stats.FilesSkippedIgnore++
				mu.Unlock()
				return nil
			}
			realPath, isLoop, resolveErr := symResolver.resolve(path)
			if resolveErr != nil {
				return nil
			}
			if isLoop {
				return nil
			}
			symResolver.markVisited(realPath)
			absPath = realPath
			if target, statErr := os.Stat(realPath); statErr == nil && target.IsDir() {
				// A followed symlink to a directory is skipped as a leaf:
				// filepath.WalkDir does not descend into symlinked
				// directories, and the target is not walked separately
				// (see DESIGN.md).
				return nil
			}
		}

		if ignorer.IsIgnored(relPath, isDir) {
			if isDir {
				mu.Lock()
				stats.FilesSkippedIgnore++
				mu.Unlock()
				return fs.SkipDir
			}
			mu.Lock()
			stats.TotalFound++
			stats.FilesSkippedIgnore++
			mu.Unlock()
			return nil
		}

		if isDir {
			return nil
		}

		mu.Lock()
		stats.TotalFound++
		rawEntries = append(rawEntries, rawEntry{relPath: relPath, absPath: absPath, isDir: false, symlink: isSymlink})
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return nil, WalkStats{}, nil, fmt.Errorf("walking directory %s: %w", absRoot, walkErr)
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	candidates := make([]Candidate, 0, len(rawEntries))
	var candMu sync.Mutex
	var errs []FileError
	var errMu sync.Mutex

	for _, re := range rawEntries {
		re := re
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			if token != nil && token.Cancelled() {
				return nil
			}

			fi, statErr := os.Stat(re.absPath)
			if statErr != nil {
				errMu.Lock()
				errs = append(errs, FileError{Path: re.relPath, Err: statErr})
				errMu.Unlock()
				return nil
			}

			if fi.Size() > maxSize {
				candMu.Lock()
				stats.FilesSkippedLarge++
				candMu.Unlock()
				return nil
			}

			if cfg.SkipBinary {
				bin, binErr := isBinary(re.absPath)
				if binErr == nil && bin {
					candMu.Lock()
					stats.FilesSkippedIgnore++
					candMu.Unlock()
					return nil
				}
			}

			mtime := fi.ModTime()
			cand := Candidate{
				Path:    re.relPath,
				AbsPath: re.absPath,
				MTime:   MTime{Secs: mtime.Unix(), Nanos: int32(mtime.Nanosecond())},
				Size:    fi.Size(),
			}
			candMu.Lock()
			candidates = append(candidates, cand)
			candMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Path < candidates[j].Path })

	return candidates, stats, errs, nil
}
