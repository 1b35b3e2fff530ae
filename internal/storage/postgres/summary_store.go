package postgres

import (
	"context"
	"fmt"

	"github.com/techjobs/harvester/internal/harvest"
)

// SummaryStore writes listing summary rows into Postgres.
//
// Expected schema:
//
//	CREATE TABLE listing_summaries (
//		industry TEXT NOT NULL,
//		url TEXT NOT NULL,
//		count_jobs INT NOT NULL,
//		tags TEXT NOT NULL,
//		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//		PRIMARY KEY (industry, url)
//	);
type SummaryStore struct {
	pool  dbConn
	table string
}

// NewSummaryStore constructs a SummaryStore on an existing pool.
func NewSummaryStore(pool dbConn, table string) (*SummaryStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	table, err := checkTable(table, "listing_summaries")
	if err != nil {
		return nil, err
	}
	return &SummaryStore{pool: pool, table: table}, nil
}

// DeleteAll removes every summary row; each harvest run fully supersedes the
// prior one.
func (s *SummaryStore) DeleteAll(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.table)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("delete listing summaries: %w", err)
	}
	return nil
}

// Save upserts one summary row keyed by (industry, url), so concurrent
// rewrites of the same listing stay idempotent.
func (s *SummaryStore) Save(ctx context.Context, summary harvest.ListingSummary) error {
	query := fmt.Sprintf(`
INSERT INTO %s (industry, url, count_jobs, tags, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (industry, url) DO UPDATE SET
	count_jobs = EXCLUDED.count_jobs,
	tags = EXCLUDED.tags,
	updated_at = NOW()`, s.table)

	args := []any{
		summary.Industry,
		summary.URL,
		summary.CountJobs,
		summary.Tags,
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert listing summary: %w", err)
	}
	return nil
}
