package scan

// DriftignoreMatcher evaluates hierarchical .driftignore files -- the
// project-specific ignore filename from spec section 4.1 -- using the same
// gitignore-compatible syntax and layering rules as GitignoreMatcher.
type DriftignoreMatcher struct {
	*hierarchicalIgnoreMatcher
}

// NewDriftignoreMatcher walks rootDir to discover every DriftignoreFilename
// file and compiles their patterns. If none exist, IsIgnored always returns
// false.
func NewDriftignoreMatcher(rootDir string) (*DriftignoreMatcher, error) {
	inner, err := newHierarchicalIgnoreMatcher(rootDir, DriftignoreFilename)
	if err != nil {
		return nil, err
	}
	return &DriftignoreMatcher{inner}, nil
}

var _ Ignorer = (*DriftignoreMatcher)(nil)
