package scan

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultIgnorePatterns are the built-in ignore patterns applied even
// without any ignore file present (spec section 4.1).
var DefaultIgnorePatterns = []string{
	".git/",
	"node_modules/",
	"dist/",
	"build/",
	"target/",
	".next/",
	".nuxt/",
	"__pycache__/",
	".pytest_cache/",
	"coverage/",
	".nyc_output/",
	"vendor/",
	".venv/",
	"venv/",
	".tox/",
	".mypy_cache/",
	"bin/",
	"obj/",
}

// DefaultIgnoreMatcher compiles DefaultIgnorePatterns into a matcher using
// the same sabhiram/go-gitignore library as the hierarchical matchers, so
// defaults and user-supplied ignore files share identical pattern syntax.
type DefaultIgnoreMatcher struct {
	matcher *gitignore.GitIgnore
}

// NewDefaultIgnoreMatcher compiles DefaultIgnorePatterns. It never fails:
// the defaults are compile-time constants that are always valid gitignore
// syntax.
func NewDefaultIgnoreMatcher() *DefaultIgnoreMatcher {
	return &DefaultIgnoreMatcher{matcher: gitignore.CompileIgnoreLines(DefaultIgnorePatterns...)}
}

// IsIgnored reports whether path matches a default ignore pattern.
func (d *DefaultIgnoreMatcher) IsIgnored(path string, isDir bool) bool {
	matchPath := normalizeMatchPath(path, isDir)
	if matchPath == "" {
		return false
	}
	return d.matcher.MatchesPath(matchPath)
}

var _ Ignorer = (*DefaultIgnoreMatcher)(nil)

// normalizeMatchPath trims a leading "./" and normalizes separators, and
// appends a trailing slash for directories so directory-only patterns
// (e.g. "build/") can match.
func normalizeMatchPath(path string, isDir bool) string {
	normalized := filepath.ToSlash(path)
	normalized = strings.TrimPrefix(normalized, "./")
	if normalized == "" || normalized == "." {
		return ""
	}
	if isDir && !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return normalized
}
