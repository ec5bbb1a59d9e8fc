package cachestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftscan/drift/internal/scan"
)

func TestSQLiteStoreInMemoryRoundTrip(t *testing.T) {
	store, err := OpenSQLiteStore("")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Commit(ctx, []scan.CachedFileMetadata{
		{Path: "a.go", Fingerprint: 42, MTime: scan.MTime{Secs: 100, Nanos: 5}, Size: 10},
	}, nil))

	rows, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Contains(t, rows, "a.go")
	assert.Equal(t, uint64(42), rows["a.go"].Fingerprint)
	assert.Equal(t, int64(100), rows["a.go"].MTime.Secs)
	assert.Equal(t, int32(5), rows["a.go"].MTime.Nanos)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.db")

	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Commit(ctx, []scan.CachedFileMetadata{
		{Path: "a.go", Fingerprint: 7, MTime: scan.MTime{Secs: 1}},
	}, nil))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	require.Contains(t, rows, "a.go")
	assert.Equal(t, uint64(7), rows["a.go"].Fingerprint)
}

func TestSQLiteStoreCommitUpsertThenDelete(t *testing.T) {
	store, err := OpenSQLiteStore("")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Commit(ctx, []scan.CachedFileMetadata{
		{Path: "a.go", Fingerprint: 1, MTime: scan.MTime{Secs: 1}},
	}, nil))

	require.NoError(t, store.Commit(ctx, []scan.CachedFileMetadata{
		{Path: "a.go", Fingerprint: 2, MTime: scan.MTime{Secs: 2}},
	}, nil))

	rows, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), rows["a.go"].Fingerprint)

	require.NoError(t, store.Commit(ctx, nil, []string{"a.go"}))
	rows, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLiteStoreFindByHash(t *testing.T) {
	store, err := OpenSQLiteStore("")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Commit(ctx, []scan.CachedFileMetadata{
		{Path: "a.go", Fingerprint: 5},
		{Path: "b.go", Fingerprint: 5},
		{Path: "c.go", Fingerprint: 6},
	}, nil))

	paths, err := store.FindByHash(ctx, 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.go", "b.go"}, paths)
}
