package harvest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/techjobs/harvester/internal/metrics"
)

// ErrRunInFlight is returned when a harvest is requested while another run
// is still executing. Runs never overlap; callers retry later.
var ErrRunInFlight = errors.New("a harvest run is already in flight")

// Config controls Runner behavior.
type Config struct {
	// Industries is the fixed ordered list of job-function filters to walk.
	Industries []string
	// IndustryConcurrency bounds how many industries are walked at once.
	IndustryConcurrency int
	// JobConcurrency bounds the per-page job fan-out.
	JobConcurrency int
	// EnrichDetails toggles the detail-page fetch for labor function and
	// description. Recorded on the run's statistics row.
	EnrichDetails bool
}

// Runner executes harvest runs: it wipes the prior dataset, walks every
// industry with bounded concurrency, and records run statistics once all
// job tasks and their persistence writes have completed.
type Runner struct {
	search    SearchClient
	detail    DetailFetcher
	summaries SummaryStore
	items     ItemStore
	stats     StatisticsStore
	archive   Archiver
	events    EventPublisher
	clock     Clock
	ids       IDGenerator
	cfg       Config
	logger    *zap.Logger

	jobsParsed atomic.Int64
	inFlight   atomic.Bool
}

// New constructs a Runner. The archive and events collaborators may be nil,
// in which case snapshots and run events are skipped.
func New(
	search SearchClient,
	detail DetailFetcher,
	summaries SummaryStore,
	items ItemStore,
	stats StatisticsStore,
	archive Archiver,
	events EventPublisher,
	clock Clock,
	ids IDGenerator,
	cfg Config,
	logger *zap.Logger,
) *Runner {
	if cfg.IndustryConcurrency <= 0 {
		cfg.IndustryConcurrency = 3
	}
	if cfg.JobConcurrency <= 0 {
		cfg.JobConcurrency = 32
	}
	metrics.Init()
	return &Runner{
		search:    search,
		detail:    detail,
		summaries: summaries,
		items:     items,
		stats:     stats,
		archive:   archive,
		events:    events,
		clock:     clock,
		ids:       ids,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run executes one full harvest sweep. The previous run's summary and item
// rows are deleted first; each run fully supersedes the prior one. An error
// is returned only when run setup fails (the dataset wipe); every failure
// inside the walk is isolated to its industry, page, or job.
func (r *Runner) Run(ctx context.Context) (RunOutcome, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return RunOutcome{}, ErrRunInFlight
	}
	defer r.inFlight.Store(false)

	runID, err := r.ids.NewID()
	if err != nil {
		return RunOutcome{}, fmt.Errorf("mint run id: %w", err)
	}
	start := r.clock.Now()

	if err := r.items.DeleteAll(ctx); err != nil {
		return RunOutcome{}, fmt.Errorf("wipe listing items: %w", err)
	}
	if err := r.summaries.DeleteAll(ctx); err != nil {
		return RunOutcome{}, fmt.Errorf("wipe listing summaries: %w", err)
	}
	r.jobsParsed.Store(0)

	r.logger.Info("harvest run started",
		zap.String("run_id", runID),
		zap.Int("industries", len(r.cfg.Industries)),
		zap.Int("industry_concurrency", r.cfg.IndustryConcurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.IndustryConcurrency)
	for _, industry := range r.cfg.Industries {
		g.Go(func() error {
			metrics.IncActiveIndustries()
			defer metrics.DecActiveIndustries()
			r.walkIndustry(gctx, industry)
			return nil
		})
	}
	// Hard join: every industry walk, including all job tasks and their
	// persistence writes, has finished before statistics are recorded.
	_ = g.Wait()

	duration := r.clock.Now().Sub(start)
	outcome := RunOutcome{
		RunID:         runID,
		JobsProcessed: int(r.jobsParsed.Load()),
		DurationMs:    duration.Milliseconds(),
	}
	metrics.ObserveRunDuration(duration)

	stats := Statistics{
		TotalJobsParsed:    outcome.JobsProcessed,
		TotalTimeMs:        outcome.DurationMs,
		LastFetch:          r.clock.Now(),
		DescriptionsParsed: r.cfg.EnrichDetails,
	}
	if err := r.stats.Save(ctx, stats); err != nil {
		r.logger.Error("save run statistics failed", zap.String("run_id", runID), zap.Error(err))
	}

	r.publishRunEvent(ctx, outcome)

	r.logger.Info("harvest run finished",
		zap.String("run_id", runID),
		zap.Int("jobs_processed", outcome.JobsProcessed),
		zap.String("duration", FormatDuration(duration)),
	)
	return outcome, nil
}

func (r *Runner) publishRunEvent(ctx context.Context, outcome RunOutcome) {
	if r.events == nil {
		return
	}
	event := RunEvent{
		RunID:         outcome.RunID,
		JobsProcessed: outcome.JobsProcessed,
		DurationMs:    outcome.DurationMs,
		FinishedAt:    r.clock.Now(),
	}
	if err := r.events.Publish(ctx, event); err != nil {
		r.logger.Warn("publish run event failed", zap.String("run_id", outcome.RunID), zap.Error(err))
	}
}

// Running reports whether a harvest run is currently executing.
func (r *Runner) Running() bool {
	return r.inFlight.Load()
}

// JobsParsed returns the live jobs-processed counter for the current run.
func (r *Runner) JobsParsed() int {
	return int(r.jobsParsed.Load())
}
