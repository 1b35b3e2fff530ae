// Package config loads and validates harvester configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Search  SearchConfig  `mapstructure:"search"`
	Detail  DetailConfig  `mapstructure:"detail"`
	Harvest HarvestConfig `mapstructure:"harvest"`
	DB      DBConfig      `mapstructure:"db"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Events  EventsConfig  `mapstructure:"events"`
}

// ServerConfig controls the ops HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// SearchConfig governs the upstream search API client.
type SearchConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	HitsPerPage    int    `mapstructure:"hits_per_page"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DetailConfig governs detail-page fetching and HTML extraction.
type DetailConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	UserAgent           string `mapstructure:"user_agent"`
	TimeoutSeconds      int    `mapstructure:"timeout_seconds"`
	Attempts            int    `mapstructure:"attempts"`
	RetryDelayMs        int    `mapstructure:"retry_delay_ms"`
	LaborSelector       string `mapstructure:"labor_selector"`
	LaborIndex          int    `mapstructure:"labor_index"`
	DescriptionSelector string `mapstructure:"description_selector"`
}

// HarvestConfig governs run orchestration.
type HarvestConfig struct {
	Industries          []string `mapstructure:"industries"`
	IndustryConcurrency int      `mapstructure:"industry_concurrency"`
	JobConcurrency      int      `mapstructure:"job_concurrency"`
	RunsPerStart        int      `mapstructure:"runs_per_start"`
	Schedule            string   `mapstructure:"schedule"`
}

// DBConfig controls access to the relational database.
type DBConfig struct {
	Provider        string `mapstructure:"provider"`
	DSN             string `mapstructure:"dsn"`
	MaxConns        int32  `mapstructure:"max_conns"`
	MinConns        int32  `mapstructure:"min_conns"`
	SummaryTable    string `mapstructure:"summary_table"`
	ItemTable       string `mapstructure:"item_table"`
	StatisticsTable string `mapstructure:"statistics_table"`
}

// ArchiveConfig selects the raw-HTML snapshot backend.
type ArchiveConfig struct {
	Provider  string `mapstructure:"provider"`
	BaseDir   string `mapstructure:"base_dir"`
	GCSBucket string `mapstructure:"gcs_bucket"`
}

// EventsConfig selects the run-event publisher backend.
type EventsConfig struct {
	Provider  string `mapstructure:"provider"`
	ProjectID string `mapstructure:"project_id"`
	TopicID   string `mapstructure:"topic_id"`
}

// The 16 fixed job-function categories used as upstream search filters.
var defaultIndustries = []string{
	"Accounting & Finance",
	"Administration",
	"Compliance / Regulatory",
	"Customer Service",
	"Data Science",
	"Design",
	"IT",
	"Legal",
	"Marketing & Communications",
	"Operations",
	"Other Engineering",
	"People & HR",
	"Product",
	"Quality Assurance",
	"Sales & Business Development",
	"Software Engineering",
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HARVESTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
	v.SetDefault("search.endpoint", "https://api.getro.com/api/v2/collections/89/search/jobs")
	v.SetDefault("search.hits_per_page", 12)
	v.SetDefault("search.timeout_seconds", 10)
	v.SetDefault("detail.enabled", true)
	v.SetDefault("detail.user_agent", defaultUserAgent)
	v.SetDefault("detail.timeout_seconds", 15)
	v.SetDefault("detail.attempts", 2)
	v.SetDefault("detail.retry_delay_ms", 2000)
	v.SetDefault("detail.labor_selector", "div.sc-beqWaB.bpXRKw")
	v.SetDefault("detail.labor_index", 1)
	v.SetDefault("detail.description_selector", "div.sc-beqWaB.fmCCHr")
	v.SetDefault("harvest.industries", defaultIndustries)
	v.SetDefault("harvest.industry_concurrency", 3)
	v.SetDefault("harvest.job_concurrency", 32)
	v.SetDefault("harvest.runs_per_start", 5)
	v.SetDefault("harvest.schedule", "@every 6h")
	v.SetDefault("db.provider", "memory")
	v.SetDefault("db.summary_table", "listing_summaries")
	v.SetDefault("db.item_table", "listing_items")
	v.SetDefault("db.statistics_table", "statistics")
	v.SetDefault("archive.provider", "noop")
	v.SetDefault("events.provider", "noop")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Search.Endpoint == "" {
		return fmt.Errorf("search.endpoint must be set")
	}
	if c.Search.HitsPerPage <= 0 {
		return fmt.Errorf("search.hits_per_page must be > 0")
	}
	if c.Search.TimeoutSeconds <= 0 {
		return fmt.Errorf("search.timeout_seconds must be > 0")
	}
	if c.Detail.Enabled && c.Detail.UserAgent == "" {
		return fmt.Errorf("detail.user_agent must be set when detail fetching is enabled")
	}
	if c.Detail.Attempts <= 0 {
		return fmt.Errorf("detail.attempts must be > 0")
	}
	if len(c.Harvest.Industries) == 0 {
		return fmt.Errorf("harvest.industries must include at least one industry")
	}
	if c.Harvest.IndustryConcurrency <= 0 {
		return fmt.Errorf("harvest.industry_concurrency must be > 0")
	}
	if c.Harvest.JobConcurrency <= 0 {
		return fmt.Errorf("harvest.job_concurrency must be > 0")
	}
	if c.Harvest.RunsPerStart <= 0 {
		return fmt.Errorf("harvest.runs_per_start must be > 0")
	}
	if c.DB.Provider == "postgres" && c.DB.DSN == "" {
		return fmt.Errorf("db.dsn must be set when db.provider is postgres")
	}
	if c.Archive.Provider == "local" && c.Archive.BaseDir == "" {
		return fmt.Errorf("archive.base_dir must be set when archive.provider is local")
	}
	if c.Archive.Provider == "gcs" && c.Archive.GCSBucket == "" {
		return fmt.Errorf("archive.gcs_bucket must be set when archive.provider is gcs")
	}
	if c.Events.Provider == "pubsub" && (c.Events.ProjectID == "" || c.Events.TopicID == "") {
		return fmt.Errorf("events.project_id and events.topic_id must be set when events.provider is pubsub")
	}
	return nil
}

// SearchTimeout returns the search request timeout as a duration.
func (c Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// DetailTimeout returns the detail request timeout as a duration.
func (c Config) DetailTimeout() time.Duration {
	return time.Duration(c.Detail.TimeoutSeconds) * time.Second
}

// DetailRetryDelay returns the pause between detail fetch attempts.
func (c Config) DetailRetryDelay() time.Duration {
	return time.Duration(c.Detail.RetryDelayMs) * time.Millisecond
}
