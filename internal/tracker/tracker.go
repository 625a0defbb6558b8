// Package tracker remembers which listings earlier runs already surfaced,
// so reports can flag new ones. It is downstream of the fetch/dedup/score
// core: results pass through Annotate untouched except for the new-vs-seen
// flag.
package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobradar-engine/internal/domain"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// TrackedResult pairs a listing with whether this run saw it first.
type TrackedResult struct {
	Job   domain.JobResult
	IsNew bool
}

type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	logger *zap.Logger
}

// Open opens (creating if needed) the seen-listing database. A sidecar
// flock guards against a second concurrent run writing the same file.
func Open(path string, logger *zap.Logger) (*Store, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("tracker lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("tracker db %s is locked by another run", path)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite wants a single writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return &Store{db: db, lock: lock, logger: logger.Named("tracker")}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS seen_listings (
  dedup_key TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  url TEXT NOT NULL,
  source TEXT NOT NULL,
  first_seen TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_seen_first_seen ON seen_listings(first_seen DESC);
`)
	return err
}

// Annotate marks each result new or seen, recording new ones. First
// occurrence of a dedup key within the slice is the one recorded; later
// ones in the same run are "seen" by definition.
func (s *Store) Annotate(ctx context.Context, results []domain.JobResult) ([]TrackedResult, error) {
	out := make([]TrackedResult, 0, len(results))
	now := time.Now().UTC().Format(time.RFC3339)

	for _, job := range results {
		res, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO seen_listings(dedup_key, title, company, url, source, first_seen)
VALUES(?,?,?,?,?,?);`,
			job.DedupKey(), job.Title, job.Company, job.URL, job.Source, now,
		)
		if err != nil {
			return nil, fmt.Errorf("tracker insert: %w", err)
		}
		n, _ := res.RowsAffected()
		out = append(out, TrackedResult{Job: job, IsNew: n > 0})
	}

	return out, nil
}

// SeenCount reports how many listings the tracker remembers.
func (s *Store) SeenCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_listings;`).Scan(&n)
	return n, err
}

// Cleanup drops listings first seen before the cutoff.
func (s *Store) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `DELETE FROM seen_listings WHERE first_seen < ?;`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	err := s.db.Close()
	if uerr := s.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}
