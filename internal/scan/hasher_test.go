package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"

	"github.com/driftscan/drift/internal/testutil"
)

func buildCandidate(t *testing.T, root, relPath string) Candidate {
	t.Helper()
	abs := filepath.Join(root, relPath)
	fi, err := os.Stat(abs)
	require.NoError(t, err)
	mt := fi.ModTime()
	return Candidate{
		Path:    relPath,
		AbsPath: abs,
		MTime:   MTime{Secs: mt.Unix(), Nanos: int32(mt.Nanosecond())},
		Size:    fi.Size(),
	}
}

func TestHasherComputesFingerprintOnFreshFile(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	cand := buildCandidate(t, root, "main.go")

	h := NewHasher()
	entries, errs := h.Hash(context.Background(), []Candidate{cand}, map[string]CachedFileMetadata{}, DefaultConfig(), nil, EventSink{})
	require.Empty(t, errs)
	require.Len(t, entries, 1)

	assert.False(t, entries[0].CacheHit)
	assert.Equal(t, xxh3.Hash([]byte("package main\n")), entries[0].Fingerprint)
	assert.Equal(t, "go", entries[0].Language)
}

func TestHasherCacheHitOnMatchingMtime(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	cand := buildCandidate(t, root, "main.go")

	cached := map[string]CachedFileMetadata{
		"main.go": {
			Path:        "main.go",
			Fingerprint: 0xdeadbeef,
			MTime:       cand.MTime,
			Size:        cand.Size,
		},
	}

	h := NewHasher()
	entries, errs := h.Hash(context.Background(), []Candidate{cand}, cached, DefaultConfig(), nil, EventSink{})
	require.Empty(t, errs)
	require.Len(t, entries, 1)

	assert.True(t, entries[0].CacheHit)
	assert.Equal(t, uint64(0xdeadbeef), entries[0].Fingerprint)
}

func TestHasherForceFullScanIgnoresCache(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	cand := buildCandidate(t, root, "main.go")

	cached := map[string]CachedFileMetadata{
		"main.go": {Path: "main.go", Fingerprint: 0xdeadbeef, MTime: cand.MTime, Size: cand.Size},
	}

	cfg := DefaultConfig()
	cfg.ForceFullScan = true

	h := NewHasher()
	entries, errs := h.Hash(context.Background(), []Candidate{cand}, cached, cfg, nil, EventSink{})
	require.Empty(t, errs)
	require.Len(t, entries, 1)

	assert.False(t, entries[0].CacheHit)
	assert.Equal(t, xxh3.Hash([]byte("package main\n")), entries[0].Fingerprint)
}

func TestHasherComputeHashesFalseBypassesHashing(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	cand := buildCandidate(t, root, "main.go")

	cfg := DefaultConfig()
	cfg.ComputeHashes = false

	h := NewHasher()
	entries, errs := h.Hash(context.Background(), []Candidate{cand}, map[string]CachedFileMetadata{}, cfg, nil, EventSink{})
	require.Empty(t, errs)
	require.Len(t, entries, 1)

	assert.False(t, entries[0].CacheHit)
	assert.Zero(t, entries[0].Fingerprint)
}

func TestHasherReportsProgressEveryInterval(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < progressInterval+1; i++ {
		files[fmt.Sprintf("f_%d.txt", i)] = "x"
	}
	root := testutil.BuildTree(t, files)

	var cands []Candidate
	for name := range files {
		cands = append(cands, buildCandidate(t, root, name))
	}

	var progressCalls int
	sink := EventSink{
		ScanProgress: func(processed, total int) { progressCalls++ },
	}

	h := NewHasher()
	_, errs := h.Hash(context.Background(), cands, map[string]CachedFileMetadata{}, DefaultConfig(), nil, sink)
	require.Empty(t, errs)
	assert.Equal(t, 1, progressCalls)
}

func TestHasherHonorsCancelToken(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	cand := buildCandidate(t, root, "main.go")

	token := NewCancelToken()
	token.Cancel()

	h := NewHasher()
	entries, errs := h.Hash(context.Background(), []Candidate{cand}, map[string]CachedFileMetadata{}, DefaultConfig(), token, EventSink{})
	require.Empty(t, errs)
	assert.Empty(t, entries)
}

func TestHasherReportsErrorForUnreadableFile(t *testing.T) {
	root := testutil.BuildTree(t, map[string]string{"main.go": "package main\n"})
	cand := buildCandidate(t, root, "main.go")
	cand.AbsPath = filepath.Join(root, "missing.go")

	h := NewHasher()
	entries, errs := h.Hash(context.Background(), []Candidate{cand}, map[string]CachedFileMetadata{}, DefaultConfig(), nil, EventSink{})
	assert.Empty(t, entries)
	require.Len(t, errs, 1)
	assert.Equal(t, "main.go", errs[0].Path)
}
