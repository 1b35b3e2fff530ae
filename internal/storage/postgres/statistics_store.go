package postgres

import (
	"context"
	"fmt"

	"github.com/techjobs/harvester/internal/harvest"
)

// StatisticsStore appends per-run statistics rows into Postgres. Rows are
// never updated in place.
//
// Expected schema:
//
//	CREATE TABLE statistics (
//		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//		total_jobs_parsed INT NOT NULL,
//		total_time_ms BIGINT NOT NULL,
//		last_fetch TIMESTAMPTZ NOT NULL,
//		descriptions_parsed BOOLEAN NOT NULL
//	);
type StatisticsStore struct {
	pool  dbConn
	table string
}

// NewStatisticsStore constructs a StatisticsStore on an existing pool.
func NewStatisticsStore(pool dbConn, table string) (*StatisticsStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	table, err := checkTable(table, "statistics")
	if err != nil {
		return nil, err
	}
	return &StatisticsStore{pool: pool, table: table}, nil
}

// Save appends one statistics row.
func (s *StatisticsStore) Save(ctx context.Context, stats harvest.Statistics) error {
	query := fmt.Sprintf(`
INSERT INTO %s (total_jobs_parsed, total_time_ms, last_fetch, descriptions_parsed)
VALUES ($1, $2, $3, $4)`, s.table)

	args := []any{
		stats.TotalJobsParsed,
		stats.TotalTimeMs,
		stats.LastFetch,
		stats.DescriptionsParsed,
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert statistics: %w", err)
	}
	return nil
}

// Latest returns the most recently recorded run.
func (s *StatisticsStore) Latest(ctx context.Context) (harvest.Statistics, error) {
	query := fmt.Sprintf(`
SELECT total_jobs_parsed, total_time_ms, last_fetch, descriptions_parsed
FROM %s ORDER BY id DESC LIMIT 1`, s.table)

	var stats harvest.Statistics
	row := s.pool.QueryRow(ctx, query)
	if err := row.Scan(
		&stats.TotalJobsParsed,
		&stats.TotalTimeMs,
		&stats.LastFetch,
		&stats.DescriptionsParsed,
	); err != nil {
		return harvest.Statistics{}, fmt.Errorf("query latest statistics: %w", err)
	}
	return stats, nil
}
