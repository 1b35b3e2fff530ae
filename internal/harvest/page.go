package harvest

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/techjobs/harvester/internal/metrics"
)

// fetchPage calls the search API for one (industry, page) pair and fans one
// bounded job task out per decoded record. It reports whether the walk should
// request the next page. The report is made only after every job task on this
// page, including its persistence writes, has completed.
func (r *Runner) fetchPage(ctx context.Context, industry string, page int) bool {
	result, err := r.search.Search(ctx, industry, page)
	if err != nil {
		// Any transport or decode failure is treated as "no more pages".
		r.logger.Warn("search page fetch failed",
			zap.String("industry", industry),
			zap.Int("page", page),
			zap.Error(err),
		)
		metrics.ObservePage(industry, "failed")
		return false
	}

	if len(result.Jobs) == 0 {
		// Normal pagination end, not an error.
		metrics.ObservePage(industry, "empty")
		return false
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.JobConcurrency)
	for _, job := range result.Jobs {
		g.Go(func() error {
			r.processJob(gctx, job, industry, result.Count)
			return nil
		})
	}
	_ = g.Wait()

	metrics.ObservePage(industry, "ok")
	r.logger.Debug("search page processed",
		zap.String("industry", industry),
		zap.Int("page", page),
		zap.Int("jobs", len(result.Jobs)),
	)
	return true
}
