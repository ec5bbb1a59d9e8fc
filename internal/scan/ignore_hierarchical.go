package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreCacheSize bounds the number of compiled per-directory ignore
// matchers held in memory at once. Long-lived scanner processes that watch
// many directories over time would otherwise grow an unbounded map; an LRU
// cache caps that growth the same way the ignore-matcher cache in the
// retrieval pack's MCP indexer does.
const ignoreCacheSize = 1000

// hierarchicalIgnoreMatcher loads and evaluates ignore-file patterns
// hierarchically: a file in a subdirectory applies only within that
// subtree, and deeper files are layered on top of shallower ones (spec
// section 3, "Hierarchical ignore"). GitignoreMatcher and
// DriftignoreMatcher are both thin instantiations of this type, differing
// only in the filename they search for.
type hierarchicalIgnoreMatcher struct {
	root     string
	filename string
	matchers *lru.Cache[string, *gitignore.GitIgnore]
	// dirs stores the sorted list of directory keys that had a matching
	// ignore file, for deterministic root-to-leaf evaluation order.
	dirs []string
}

func newHierarchicalIgnoreMatcher(rootDir, filename string) (*hierarchicalIgnoreMatcher, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", rootDir, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root path %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", absRoot)
	}

	cache, err := lru.New[string, *gitignore.GitIgnore](ignoreCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating ignore matcher cache: %w", err)
	}

	m := &hierarchicalIgnoreMatcher{root: absRoot, filename: filename, matchers: cache}
	if err := m.discover(); err != nil {
		return nil, fmt.Errorf("discovering %s files in %s: %w", filename, absRoot, err)
	}
	return m, nil
}

func (m *hierarchicalIgnoreMatcher) discover() error {
	var dirs []string

	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if d.IsDir() || d.Name() != m.filename {
			return nil
		}

		dirPath := filepath.Dir(path)
		relDir, err := filepath.Rel(m.root, dirPath)
		if err != nil {
			return nil
		}
		if relDir == "" {
			relDir = "."
		}

		compiled, err := gitignore.CompileIgnoreFile(path)
		if err != nil {
			return nil
		}

		m.matchers.Add(relDir, compiled)
		dirs = append(dirs, relDir)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory tree: %w", err)
	}

	sort.Strings(dirs)
	m.dirs = dirs
	return nil
}

// IsIgnored reports whether path is ignored by any applicable ignore file,
// evaluated from the root toward path's parent directory, so a deeper file
// can only add restrictions within its own subtree.
func (m *hierarchicalIgnoreMatcher) IsIgnored(path string, isDir bool) bool {
	matchPath := normalizeMatchPath(path, isDir)
	if matchPath == "" {
		return false
	}
	normalizedPath := strings.TrimSuffix(matchPath, "")

	for _, dir := range m.dirs {
		if dir != "." {
			prefix := dir + "/"
			if !strings.HasPrefix(normalizedPath, prefix) {
				continue
			}
		}

		matcher, ok := m.matchers.Get(dir)
		if !ok {
			continue
		}

		var relPath string
		if dir == "." {
			relPath = matchPath
		} else {
			relPath = strings.TrimPrefix(matchPath, dir+"/")
		}

		if matcher.MatchesPath(relPath) {
			return true
		}
	}

	return false
}

// PatternCount returns the number of ignore files that were loaded.
func (m *hierarchicalIgnoreMatcher) PatternCount() int {
	return len(m.dirs)
}

var _ Ignorer = (*hierarchicalIgnoreMatcher)(nil)
