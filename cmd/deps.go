package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/archive"
	"github.com/techjobs/harvester/internal/clock/system"
	"github.com/techjobs/harvester/internal/config"
	"github.com/techjobs/harvester/internal/fetcher"
	"github.com/techjobs/harvester/internal/harvest"
	"github.com/techjobs/harvester/internal/id/uuid"
	"github.com/techjobs/harvester/internal/logging"
	"github.com/techjobs/harvester/internal/publisher"
	memorypublisher "github.com/techjobs/harvester/internal/publisher/memory"
	pubsubpublisher "github.com/techjobs/harvester/internal/publisher/pubsub"
	"github.com/techjobs/harvester/internal/search"
	memorystorage "github.com/techjobs/harvester/internal/storage/memory"
	"github.com/techjobs/harvester/internal/storage/postgres"
)

// deps holds the long-lived services a command needs, plus the cleanup
// callbacks that release them.
type deps struct {
	cfg     config.Config
	logger  *zap.Logger
	runner  *harvest.Runner
	stats   harvest.StatisticsStore
	closers []func()
}

// close releases services in reverse construction order. Safe to call once.
func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// buildDeps loads configuration and constructs every collaborator the harvest
// runner depends on. It fails fast when a critical service cannot be
// initialized.
func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	d := &deps{cfg: cfg, logger: logger}
	d.closers = append(d.closers, func() {
		// Best effort; stderr may not be syncable.
		_ = logger.Sync()
	})

	summaries, items, stats, err := buildStores(ctx, d)
	if err != nil {
		d.close()
		return nil, err
	}
	d.stats = stats

	archiver, err := buildArchive(ctx, d)
	if err != nil {
		d.close()
		return nil, err
	}

	events, err := buildEvents(ctx, d)
	if err != nil {
		d.close()
		return nil, err
	}

	searchClient := search.New(search.Config{
		Endpoint:    cfg.Search.Endpoint,
		HitsPerPage: cfg.Search.HitsPerPage,
		Timeout:     cfg.SearchTimeout(),
	}, logger)

	detailFetcher := fetcher.New(fetcher.Config{
		UserAgent:  cfg.Detail.UserAgent,
		Timeout:    cfg.DetailTimeout(),
		Attempts:   cfg.Detail.Attempts,
		RetryDelay: cfg.DetailRetryDelay(),
		Selectors: fetcher.SelectorConfig{
			LaborFunction: cfg.Detail.LaborSelector,
			LaborIndex:    cfg.Detail.LaborIndex,
			Description:   cfg.Detail.DescriptionSelector,
		},
	}, logger)

	d.runner = harvest.New(
		searchClient,
		detailFetcher,
		summaries,
		items,
		stats,
		archiver,
		events,
		system.New(),
		uuid.New(),
		harvest.Config{
			Industries:          cfg.Harvest.Industries,
			IndustryConcurrency: cfg.Harvest.IndustryConcurrency,
			JobConcurrency:      cfg.Harvest.JobConcurrency,
			EnrichDetails:       cfg.Detail.Enabled,
		},
		logger,
	)
	return d, nil
}

func buildStores(ctx context.Context, d *deps) (harvest.SummaryStore, harvest.ItemStore, harvest.StatisticsStore, error) {
	switch d.cfg.DB.Provider {
	case "postgres":
		d.logger.Info("connecting to postgres")
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DSN:      d.cfg.DB.DSN,
			MaxConns: d.cfg.DB.MaxConns,
			MinConns: d.cfg.DB.MinConns,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init postgres: %w", err)
		}
		d.closers = append(d.closers, pool.Close)

		summaries, err := postgres.NewSummaryStore(pool, d.cfg.DB.SummaryTable)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init summary store: %w", err)
		}
		items, err := postgres.NewItemStore(pool, d.cfg.DB.ItemTable)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init item store: %w", err)
		}
		stats, err := postgres.NewStatisticsStore(pool, d.cfg.DB.StatisticsTable)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init statistics store: %w", err)
		}
		return summaries, items, stats, nil
	case "memory":
		d.logger.Info("using in-memory stores, harvested data will not survive the process")
		return memorystorage.NewSummaryStore(), memorystorage.NewItemStore(), memorystorage.NewStatisticsStore(), nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown db provider: %s", d.cfg.DB.Provider)
	}
}

func buildArchive(ctx context.Context, d *deps) (harvest.Archiver, error) {
	switch d.cfg.Archive.Provider {
	case "gcs":
		d.logger.Info("using gcs snapshot archive", zap.String("bucket", d.cfg.Archive.GCSBucket))
		provider, err := archive.NewGCSProvider(ctx, d.cfg.Archive.GCSBucket, d.logger)
		if err != nil {
			return nil, fmt.Errorf("init gcs archive: %w", err)
		}
		d.closers = append(d.closers, func() {
			if err := provider.Close(); err != nil {
				d.logger.Warn("close gcs archive", zap.Error(err))
			}
		})
		return provider, nil
	case "local":
		d.logger.Info("using local snapshot archive", zap.String("base_dir", d.cfg.Archive.BaseDir))
		provider, err := archive.NewLocalProvider(d.cfg.Archive.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("init local archive: %w", err)
		}
		return provider, nil
	case "noop":
		return archive.NoOpProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown archive provider: %s", d.cfg.Archive.Provider)
	}
}

func buildEvents(ctx context.Context, d *deps) (harvest.EventPublisher, error) {
	switch d.cfg.Events.Provider {
	case "pubsub":
		d.logger.Info("publishing run events to pubsub", zap.String("topic", d.cfg.Events.TopicID))
		pub, err := pubsubpublisher.New(ctx, d.cfg.Events.ProjectID, d.cfg.Events.TopicID, d.logger)
		if err != nil {
			return nil, fmt.Errorf("init pubsub publisher: %w", err)
		}
		d.closers = append(d.closers, func() {
			if err := pub.Close(); err != nil {
				d.logger.Warn("close pubsub publisher", zap.Error(err))
			}
		})
		return pub, nil
	case "memory":
		d.logger.Info("recording run events in memory, events will not survive the process")
		return memorypublisher.New(), nil
	case "noop":
		return publisher.NoOp{}, nil
	default:
		return nil, fmt.Errorf("unknown events provider: %s", d.cfg.Events.Provider)
	}
}
