package postgres

import (
	"context"
	"fmt"

	"github.com/techjobs/harvester/internal/harvest"
)

// ItemStore writes normalized listing items into Postgres.
//
// Expected schema:
//
//	CREATE TABLE listing_items (
//		url TEXT PRIMARY KEY,
//		title TEXT NOT NULL,
//		organization_name TEXT NOT NULL,
//		logo_url TEXT NOT NULL,
//		locations TEXT NOT NULL,
//		posted_at TIMESTAMPTZ,
//		labor_function TEXT,
//		description TEXT,
//		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type ItemStore struct {
	pool  dbConn
	table string
}

// NewItemStore constructs an ItemStore on an existing pool.
func NewItemStore(pool dbConn, table string) (*ItemStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	table, err := checkTable(table, "listing_items")
	if err != nil {
		return nil, err
	}
	return &ItemStore{pool: pool, table: table}, nil
}

// DeleteAll removes every item row.
func (s *ItemStore) DeleteAll(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.table)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("delete listing items: %w", err)
	}
	return nil
}

// Save upserts one item row keyed by the canonical detail URL. A nil
// description persists as SQL NULL, never as an empty string.
func (s *ItemStore) Save(ctx context.Context, item harvest.ListingItem) error {
	query := fmt.Sprintf(`
INSERT INTO %s (url, title, organization_name, logo_url, locations, posted_at, labor_function, description, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
ON CONFLICT (url) DO UPDATE SET
	title = EXCLUDED.title,
	organization_name = EXCLUDED.organization_name,
	logo_url = EXCLUDED.logo_url,
	locations = EXCLUDED.locations,
	posted_at = EXCLUDED.posted_at,
	labor_function = EXCLUDED.labor_function,
	description = EXCLUDED.description,
	updated_at = NOW()`, s.table)

	var laborFunction any
	if item.LaborFunction != "" {
		laborFunction = item.LaborFunction
	}

	args := []any{
		item.URL,
		item.Title,
		item.OrganizationName,
		item.LogoURL,
		item.Locations,
		item.PostedAt,
		laborFunction,
		item.Description,
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert listing item: %w", err)
	}
	return nil
}
