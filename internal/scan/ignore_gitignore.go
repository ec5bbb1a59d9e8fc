package scan

// GitignoreMatcher evaluates hierarchical .gitignore files rooted at a
// given directory, gitignore-exact (spec section 6).
type GitignoreMatcher struct {
	*hierarchicalIgnoreMatcher
}

// NewGitignoreMatcher walks rootDir to discover every .gitignore file and
// compiles their patterns. If none exist, IsIgnored always returns false.
func NewGitignoreMatcher(rootDir string) (*GitignoreMatcher, error) {
	inner, err := newHierarchicalIgnoreMatcher(rootDir, ".gitignore")
	if err != nil {
		return nil, err
	}
	return &GitignoreMatcher{inner}, nil
}

var _ Ignorer = (*GitignoreMatcher)(nil)
