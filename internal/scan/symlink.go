package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// symlinkResolver tracks visited real paths to detect symlink loops during
// discovery when Config.FollowSymlinks is true (spec section 4.1, step 1).
// Safe for concurrent use.
type symlinkResolver struct {
	mu      sync.Mutex
	visited map[string]bool
}

func newSymlinkResolver() *symlinkResolver {
	return &symlinkResolver{visited: make(map[string]bool)}
}

// resolve follows path through any symlinks and reports whether the
// resolved real path has already been visited (a cycle). It does not mark
// the path visited; the caller must call markVisited once it decides to
// process the entry.
func (s *symlinkResolver) resolve(path string) (realPath string, isLoop bool, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, fmt.Errorf("dangling symlink %s: %w", path, err)
		}
		return "", false, fmt.Errorf("resolving symlink %s: %w", path, err)
	}

	s.mu.Lock()
	loop := s.visited[resolved]
	s.mu.Unlock()

	return resolved, loop, nil
}

func (s *symlinkResolver) markVisited(realPath string) {
	s.mu.Lock()
	s.visited[realPath] = true
	s.mu.Unlock()
}
