package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, "https://api.getro.com/api/v2/collections/89/search/jobs", cfg.Search.Endpoint)
	assert.Equal(t, 12, cfg.Search.HitsPerPage)
	assert.Equal(t, 10*time.Second, cfg.SearchTimeout())

	assert.True(t, cfg.Detail.Enabled)
	assert.Contains(t, cfg.Detail.UserAgent, "Chrome/")
	assert.Equal(t, 2, cfg.Detail.Attempts)
	assert.Equal(t, 15*time.Second, cfg.DetailTimeout())
	assert.Equal(t, 2*time.Second, cfg.DetailRetryDelay())
	assert.Equal(t, 1, cfg.Detail.LaborIndex)

	assert.Len(t, cfg.Harvest.Industries, 16)
	assert.Contains(t, cfg.Harvest.Industries, "Software Engineering")
	assert.Contains(t, cfg.Harvest.Industries, "Compliance / Regulatory")
	assert.Equal(t, 3, cfg.Harvest.IndustryConcurrency)
	assert.Equal(t, 32, cfg.Harvest.JobConcurrency)
	assert.Equal(t, 5, cfg.Harvest.RunsPerStart)
	assert.Equal(t, "@every 6h", cfg.Harvest.Schedule)

	assert.Equal(t, "memory", cfg.DB.Provider)
	assert.Equal(t, "noop", cfg.Archive.Provider)
	assert.Equal(t, "noop", cfg.Events.Provider)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
harvest:
  industries:
    - IT
  industry_concurrency: 2
db:
  provider: postgres
  dsn: postgres://localhost/harvester
`), 0o640))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"IT"}, cfg.Harvest.Industries)
	assert.Equal(t, 2, cfg.Harvest.IndustryConcurrency)
	assert.Equal(t, "postgres", cfg.DB.Provider)
	// Untouched sections keep their defaults.
	assert.Equal(t, 12, cfg.Search.HitsPerPage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateFailures(t *testing.T) {
	base := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"MissingEndpoint", func(c *Config) { c.Search.Endpoint = "" }, "search.endpoint"},
		{"ZeroPort", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"NoIndustries", func(c *Config) { c.Harvest.Industries = nil }, "harvest.industries"},
		{"ZeroIndustryConcurrency", func(c *Config) { c.Harvest.IndustryConcurrency = 0 }, "industry_concurrency"},
		{"ZeroRuns", func(c *Config) { c.Harvest.RunsPerStart = 0 }, "runs_per_start"},
		{"BlankUserAgent", func(c *Config) { c.Detail.UserAgent = "" }, "detail.user_agent"},
		{"PostgresWithoutDSN", func(c *Config) { c.DB.Provider = "postgres" }, "db.dsn"},
		{"LocalArchiveWithoutDir", func(c *Config) { c.Archive.Provider = "local" }, "archive.base_dir"},
		{"GCSWithoutBucket", func(c *Config) { c.Archive.Provider = "gcs" }, "gcs_bucket"},
		{"PubSubWithoutTopic", func(c *Config) { c.Events.Provider = "pubsub" }, "events.project_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
