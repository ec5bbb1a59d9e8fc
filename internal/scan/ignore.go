package scan

// Ignorer is the interface for all ignore-pattern matchers used during
// discovery. path must be root-relative, using forward slashes. isDir
// indicates whether path is a directory (needed for directory-only
// patterns, i.e. those ending in "/").
type Ignorer interface {
	IsIgnored(path string, isDir bool) bool
}

// CompositeIgnorer chains multiple Ignorer sources and reports a path as
// ignored if ANY source matches it -- defaults, then .gitignore, then
// .driftignore, then CLI extra-ignore patterns (spec section 4.1).
type CompositeIgnorer struct {
	ignorers []Ignorer
}

// NewCompositeIgnorer builds a CompositeIgnorer from the given sources. Nil
// entries are skipped silently so callers can pass optional matchers
// directly.
func NewCompositeIgnorer(ignorers ...Ignorer) *CompositeIgnorer {
	filtered := make([]Ignorer, 0, len(ignorers))
	for _, ig := range ignorers {
		if ig != nil {
			filtered = append(filtered, ig)
		}
	}
	return &CompositeIgnorer{ignorers: filtered}
}

// IsIgnored reports whether path is ignored by any chained source.
func (c *CompositeIgnorer) IsIgnored(path string, isDir bool) bool {
	for _, ig := range c.ignorers {
		if ig.IsIgnored(path, isDir) {
			return true
		}
	}
	return false
}

var _ Ignorer = (*CompositeIgnorer)(nil)
