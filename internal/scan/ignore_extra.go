package scan

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExtraIgnoreMatcher evaluates the caller-supplied Config.ExtraIgnore
// patterns using doublestar glob syntax ("**" for deep matches), layered on
// top of defaults and hierarchical ignore files (spec section 3).
type ExtraIgnoreMatcher struct {
	patterns []string
}

// NewExtraIgnoreMatcher builds a matcher from the given patterns. A copy is
// made so the caller's slice may be mutated afterward without effect.
func NewExtraIgnoreMatcher(patterns []string) *ExtraIgnoreMatcher {
	cp := make([]string, len(patterns))
	copy(cp, patterns)
	return &ExtraIgnoreMatcher{patterns: cp}
}

// IsIgnored reports whether path matches any extra-ignore glob pattern.
// Directory-only patterns are not modeled here (doublestar has no trailing
// "/" convention); callers wanting directory-only semantics should add the
// pattern to a hierarchical ignore file instead.
func (m *ExtraIgnoreMatcher) IsIgnored(path string, _ bool) bool {
	normalized := filepath.ToSlash(path)
	normalized = strings.TrimPrefix(normalized, "./")
	if normalized == "" {
		return false
	}

	for _, pattern := range m.patterns {
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

var _ Ignorer = (*ExtraIgnoreMatcher)(nil)
