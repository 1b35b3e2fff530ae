// Package scheduler wires up the cron job that periodically triggers harvest
// runs while the service is up.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/harvest"
)

// Harvester is the slice of the run orchestrator the scheduler needs.
type Harvester interface {
	Run(ctx context.Context) (harvest.RunOutcome, error)
}

// Scheduler wraps robfig/cron and manages the periodic harvest loop.
type Scheduler struct {
	cron   *cron.Cron
	runner Harvester
	spec   string
	logger *zap.Logger
}

// New creates a Scheduler firing on the given cron spec (e.g. "@every 6h").
func New(runner Harvester, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the harvest job and starts the cron loop. A run is also
// fired immediately so the dataset is populated without waiting for the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	}); err != nil {
		return fmt.Errorf("register harvest schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("harvest schedule started", zap.String("spec", s.spec))

	go s.runOnce(ctx)
	return nil
}

// Stop shuts the cron loop down; an in-flight run finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("harvest schedule stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	outcome, err := s.runner.Run(ctx)
	switch {
	case errors.Is(err, harvest.ErrRunInFlight):
		// Ticks never overlap runs; the slow run wins.
		s.logger.Warn("scheduled harvest skipped, previous run still in flight")
	case err != nil:
		s.logger.Error("scheduled harvest failed", zap.Error(err))
	default:
		s.logger.Info("scheduled harvest finished",
			zap.String("run_id", outcome.RunID),
			zap.Int("jobs_processed", outcome.JobsProcessed),
		)
	}
}
