package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/archive"
	"github.com/techjobs/harvester/internal/config"
	"github.com/techjobs/harvester/internal/publisher"
	memorypublisher "github.com/techjobs/harvester/internal/publisher/memory"
	memorystorage "github.com/techjobs/harvester/internal/storage/memory"
)

func testDeps(cfg config.Config) *deps {
	return &deps{cfg: cfg, logger: zap.NewNop()}
}

func TestBuildEventsProviders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	pub, err := buildEvents(ctx, testDeps(config.Config{
		Events: config.EventsConfig{Provider: "memory"},
	}))
	require.NoError(t, err)
	assert.IsType(t, &memorypublisher.Publisher{}, pub)

	pub, err = buildEvents(ctx, testDeps(config.Config{
		Events: config.EventsConfig{Provider: "noop"},
	}))
	require.NoError(t, err)
	assert.IsType(t, publisher.NoOp{}, pub)

	_, err = buildEvents(ctx, testDeps(config.Config{
		Events: config.EventsConfig{Provider: "kafka"},
	}))
	require.Error(t, err)
}

func TestBuildArchiveProviders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	archiver, err := buildArchive(ctx, testDeps(config.Config{
		Archive: config.ArchiveConfig{Provider: "noop"},
	}))
	require.NoError(t, err)
	assert.IsType(t, archive.NoOpProvider{}, archiver)

	archiver, err = buildArchive(ctx, testDeps(config.Config{
		Archive: config.ArchiveConfig{Provider: "local", BaseDir: t.TempDir()},
	}))
	require.NoError(t, err)
	assert.IsType(t, &archive.LocalProvider{}, archiver)

	_, err = buildArchive(ctx, testDeps(config.Config{
		Archive: config.ArchiveConfig{Provider: "s3"},
	}))
	require.Error(t, err)
}

func TestBuildStoresMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	summaries, items, stats, err := buildStores(ctx, testDeps(config.Config{
		DB: config.DBConfig{Provider: "memory"},
	}))
	require.NoError(t, err)
	assert.IsType(t, &memorystorage.SummaryStore{}, summaries)
	assert.IsType(t, &memorystorage.ItemStore{}, items)
	assert.IsType(t, &memorystorage.StatisticsStore{}, stats)

	_, _, _, err = buildStores(ctx, testDeps(config.Config{
		DB: config.DBConfig{Provider: "mysql"},
	}))
	require.Error(t, err)
}
