package scan

import (
	"context"

	"github.com/driftscan/drift/internal/scanerrors"
)

// DiscoverOnly runs the Walker alone, without hashing or diffing against a
// cache (spec section 6, discover_only). It is the cheapest possible
// invocation: no store is touched, no transaction commits.
func DiscoverOnly(ctx context.Context, root string, cfg Config, token *CancelToken) ([]Candidate, []FileError, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}

	ignorer, err := buildIgnorer(root, cfg)
	if err != nil {
		return nil, nil, scanerrors.IO("building ignore rules", err)
	}

	candidates, _, errs, err := NewWalker().Discover(ctx, root, cfg, ignorer, token)
	if err != nil {
		return nil, nil, scanerrors.IO("discovering files under "+root, err)
	}
	return candidates, errs, nil
}
