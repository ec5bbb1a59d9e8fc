package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftscan/drift/internal/cachestore"
	"github.com/driftscan/drift/internal/scan"
	"github.com/driftscan/drift/internal/testutil"
)

func TestScanFirstRunClassifiesEverythingAsAdded(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{
		"main.go":    "package main\n",
		"lib/a.go":   "package lib\n",
		"README.md":  "# hello\n",
	})

	store := cachestore.NewMemoryStore()
	diff, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, nil)
	require.NoError(t, err)

	assert.Len(t, diff.Added, 3)
	assert.Empty(t, diff.Modified)
	assert.Empty(t, diff.Unchanged)
	assert.Empty(t, diff.Removed)
	assert.Equal(t, scan.StatusComplete, diff.Status)
}

func TestScanTouchOnlyRescanIsUnchanged(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	store := cachestore.NewMemoryStore()

	_, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, nil)
	require.NoError(t, err)

	// Touch: move the mtime one second forward without changing content.
	path := filepath.Join(root, "main.go")
	fi, err := os.Stat(path)
	require.NoError(t, err)
	future := fi.ModTime().Add(time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	diff, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, diff.Unchanged)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Modified)
}

func TestScanContentChangeIsModified(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	store := cachestore.NewMemoryStore()

	_, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, nil)
	require.NoError(t, err)

	// Set the mtime explicitly one second forward so the change is visible
	// regardless of the host filesystem's mtime resolution.
	path := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	future := fi.ModTime().Add(time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	diff, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, diff.Modified)
	assert.Empty(t, diff.Unchanged)
}

func TestScanDeletedFileIsRemoved(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{
		"main.go": "package main\n",
		"b.go":    "package main\n",
	})
	store := cachestore.NewMemoryStore()

	_, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "b.go")))

	diff, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.go"}, diff.Removed)
}

func TestScanOversizeFileExcludedAndReflectedInStats(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"small.go": "package main\n"})
	require.NoError(t, os.WriteFile(filepath.Join(root, "huge.bin"), make([]byte, 8192), 0o644))

	cfg := scan.DefaultConfig()
	cfg.MaxFileSize = 1024

	store := cachestore.NewMemoryStore()
	diff, err := scan.Scan(context.Background(), root, cfg, store, scan.EventSink{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"small.go"}, diff.Added)
	assert.Equal(t, 1, diff.Stats.FilesSkippedLarge)
}

func TestScanCancellationYieldsPartialStatus(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{
		"a.go": "package a\n",
		"b.go": "package b\n",
	})
	store := cachestore.NewMemoryStore()
	token := scan.NewCancelToken()
	token.Cancel()

	diff, err := scan.Scan(context.Background(), root, scan.DefaultConfig(), store, scan.EventSink{}, token)
	require.NoError(t, err)

	assert.Equal(t, scan.StatusPartial, diff.Status)
}

func TestScanInvalidConfigReturnsError(t *testing.T) {
	store := cachestore.NewMemoryStore()
	cfg := scan.DefaultConfig()
	cfg.MaxFileSize = -1

	_, err := scan.Scan(context.Background(), t.TempDir(), cfg, store, scan.EventSink{}, nil)
	assert.Error(t, err)
}
