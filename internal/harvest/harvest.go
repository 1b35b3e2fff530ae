// Package harvest defines the core types and interfaces for the job
// harvesting engine. It includes the decoded upstream record shapes, the two
// persisted listing shapes, and the collaborator interfaces the run
// orchestrator depends on.
package harvest

import (
	"context"
	"time"
)

// Organization is the upstream organization object embedded in a job record.
type Organization struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	LogoURL      string   `json:"logo_url"`
	IndustryTags []string `json:"industryTags"`
	HeadCount    int      `json:"headCount"`
	Stage        string   `json:"stage"`
}

// Job is one raw job record as returned by the search API.
type Job struct {
	Title               string        `json:"title"`
	URL                 string        `json:"url"`
	Slug                string        `json:"slug"`
	HasDescription      bool          `json:"has_description"`
	Seniority           string        `json:"seniority"`
	CreatedAt           int64         `json:"created_at"`
	SearchableLocations []string      `json:"searchable_locations"`
	Organization        *Organization `json:"organization"`
}

// SearchPage is the decoded result of one search API call.
type SearchPage struct {
	Count int
	Jobs  []Job
}

// ListingSummary is the per-job summary row persisted for every search hit.
type ListingSummary struct {
	Industry  string
	URL       string
	CountJobs int
	Tags      string
}

// ListingItem is the normalized per-job row enriched from the detail page.
type ListingItem struct {
	Title            string
	URL              string
	OrganizationName string
	LogoURL          string
	Locations        string
	PostedAt         *time.Time
	LaborFunction    string
	Description      *string
}

// Statistics is the per-run accounting row appended after every harvest.
type Statistics struct {
	TotalJobsParsed    int
	TotalTimeMs        int64
	LastFetch          time.Time
	DescriptionsParsed bool
}

// RunOutcome reports what a single completed harvest run did.
type RunOutcome struct {
	RunID         string
	JobsProcessed int
	DurationMs    int64
}

// RunEvent is published after a run's statistics row has been written.
type RunEvent struct {
	RunID         string    `json:"run_id"`
	JobsProcessed int       `json:"jobs_processed"`
	DurationMs    int64     `json:"duration_ms"`
	FinishedAt    time.Time `json:"finished_at"`
}

// DetailPage holds the fields extracted from one fetched detail page.
// LaborFunction is empty when the page had fewer matching nodes than the
// configured ordinal; the caller falls back to the industry label.
type DetailPage struct {
	LaborFunction string
	Description   string
	HTML          []byte
}

// SearchClient calls the upstream search API for one (industry, page) pair.
type SearchClient interface {
	Search(ctx context.Context, industry string, page int) (SearchPage, error)
}

// DetailFetcher retrieves and parses one detail page with bounded retry.
// An error means every attempt failed; the caller skips enrichment.
type DetailFetcher interface {
	Fetch(ctx context.Context, url string) (*DetailPage, error)
}

// SummaryStore persists listing summary rows.
type SummaryStore interface {
	DeleteAll(ctx context.Context) error
	Save(ctx context.Context, summary ListingSummary) error
}

// ItemStore persists normalized listing items.
type ItemStore interface {
	DeleteAll(ctx context.Context) error
	Save(ctx context.Context, item ListingItem) error
}

// StatisticsStore appends run statistics rows.
type StatisticsStore interface {
	Save(ctx context.Context, stats Statistics) error
	Latest(ctx context.Context) (Statistics, error)
}

// Archiver stores raw detail-page HTML snapshots.
type Archiver interface {
	Save(ctx context.Context, objectName string, data []byte) error
}

// EventPublisher announces completed runs to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event RunEvent) error
}

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints run identifiers.
type IDGenerator interface {
	NewID() (string, error)
}
