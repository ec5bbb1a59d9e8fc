package cachestore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no cgo

	"github.com/driftscan/drift/internal/scan"
	"github.com/driftscan/drift/internal/scanconfig"
	"github.com/driftscan/drift/internal/scanerrors"
)

const schema = `
CREATE TABLE IF NOT EXISTS file_metadata (
	path            TEXT PRIMARY KEY,
	content_hash    INTEGER NOT NULL,
	mtime_secs      INTEGER NOT NULL,
	mtime_nanos     INTEGER NOT NULL,
	file_size       INTEGER NOT NULL,
	last_indexed_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_file_metadata_content_hash ON file_metadata(content_hash);
`

// SQLiteStore persists the file_metadata snapshot (spec section 6) in a
// single-file SQLite database via the pure-Go modernc.org/sqlite driver, so
// the scanner never needs cgo. WAL mode lets the Differ's LoadAll acquire a
// consistent read snapshot while a prior writer's transaction is still
// settling, and an advisory file lock enforces the single-writer commit
// discipline from spec section 4.4 across separate processes sharing one
// snapshot file -- database/sql's own connection-level mutex only
// serializes writers within one process.
type SQLiteStore struct {
	db     *sql.DB
	lock   *flock.Flock
	logger *slog.Logger
}

// OpenSQLiteStore opens (creating if absent) the snapshot database at path.
// An empty path opens an in-memory database, useful for tests.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	logger := scanconfig.NewLogger("cachestore")

	dsn := path
	if path == "" {
		dsn = ":memory:"
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, scanerrors.Storage("creating snapshot directory", err)
		}
		if err := validateIntegrity(path); err != nil {
			logger.Warn("snapshot failed integrity check, recreating", "path", path, "error", err)
			_ = os.Remove(path)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, scanerrors.Storage("opening snapshot database", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, scanerrors.Storage("enabling WAL mode", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, scanerrors.Storage("enabling foreign keys", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, scanerrors.Storage("creating schema", err)
	}

	var lockPath string
	if path == "" {
		lockPath = filepath.Join(os.TempDir(), fmt.Sprintf("drift-%d.lock", time.Now().UnixNano()))
	} else {
		lockPath = path + ".lock"
	}

	return &SQLiteStore{db: db, lock: flock.New(lockPath), logger: logger}, nil
}

func validateIntegrity(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("opening for validation: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("database reported: %s", result)
	}
	return nil
}

func (s *SQLiteStore) LoadAll(ctx context.Context) (map[string]scan.CachedFileMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, content_hash, mtime_secs, mtime_nanos, file_size, last_indexed_at
		FROM file_metadata`)
	if err != nil {
		return nil, scanerrors.Storage("loading snapshot", err)
	}
	defer rows.Close()

	out := make(map[string]scan.CachedFileMetadata)
	for rows.Next() {
		var row scan.CachedFileMetadata
		var hash, secs int64
		var nanos int32
		if err := rows.Scan(&row.Path, &hash, &secs, &nanos, &row.Size, &row.LastIndexedAt); err != nil {
			return nil, scanerrors.Storage("scanning snapshot row", err)
		}
		row.Fingerprint = uint64(hash)
		row.MTime = scan.MTime{Secs: secs, Nanos: nanos}
		out[row.Path] = row
	}
	if err := rows.Err(); err != nil {
		return nil, scanerrors.Storage("iterating snapshot rows", err)
	}
	return out, nil
}

func (s *SQLiteStore) Commit(ctx context.Context, upserts []scan.CachedFileMetadata, deletes []string) error {
	if err := s.lock.Lock(); err != nil {
		return scanerrors.Storage("acquiring snapshot writer lock", err)
	}
	defer s.lock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return scanerrors.Storage("beginning snapshot transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	now := time.Now().Unix()
	upsertStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_metadata (path, content_hash, mtime_secs, mtime_nanos, file_size, last_indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash = excluded.content_hash,
			mtime_secs = excluded.mtime_secs,
			mtime_nanos = excluded.mtime_nanos,
			file_size = excluded.file_size,
			last_indexed_at = excluded.last_indexed_at`)
	if err != nil {
		return scanerrors.Storage("preparing upsert", err)
	}
	defer upsertStmt.Close()

	for _, row := range upserts {
		lastIndexed := row.LastIndexedAt
		if lastIndexed == 0 {
			lastIndexed = now
		}
		if _, err := upsertStmt.ExecContext(ctx, row.Path, int64(row.Fingerprint), row.MTime.Secs, row.MTime.Nanos, row.Size, lastIndexed); err != nil {
			return scanerrors.Storage(fmt.Sprintf("upserting %s", row.Path), err)
		}
	}

	deleteStmt, err := tx.PrepareContext(ctx, `DELETE FROM file_metadata WHERE path = ?`)
	if err != nil {
		return scanerrors.Storage("preparing delete", err)
	}
	defer deleteStmt.Close()

	for _, path := range deletes {
		if _, err := deleteStmt.ExecContext(ctx, path); err != nil {
			return scanerrors.Storage(fmt.Sprintf("deleting %s", path), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return scanerrors.Storage("committing snapshot transaction", err)
	}
	return nil
}

func (s *SQLiteStore) FindByHash(ctx context.Context, hash uint64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM file_metadata WHERE content_hash = ?`, int64(hash))
	if err != nil {
		return nil, scanerrors.Storage("querying by content hash", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, scanerrors.Storage("scanning content-hash row", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
