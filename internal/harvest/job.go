package harvest

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/archive"
	"github.com/techjobs/harvester/internal/metrics"
)

// processJob maps one raw job record into its two persisted shapes and writes
// them. The jobs-parsed counter is incremented on every exit path, so the
// run's statistics count attempts, not successes. No failure inside a job
// task propagates to its page or industry.
func (r *Runner) processJob(ctx context.Context, job Job, industry string, countJobs int) {
	start := r.clock.Now()
	status := "ok"
	defer func() {
		r.jobsParsed.Add(1)
		metrics.ObserveJob(status)
		r.logger.Debug("job processed",
			zap.String("title", job.Title),
			zap.String("industry", industry),
			zap.String("status", status),
			zap.Duration("duration", r.clock.Now().Sub(start)),
		)
	}()

	detailURL, err := DetailURL(job)
	if err != nil {
		// Mapping precondition failure: skip persistence, still counted.
		status = "skipped"
		r.logger.Warn("job record cannot yield a detail url",
			zap.String("industry", industry),
			zap.Error(err),
		)
		return
	}

	summary := MapSummary(industry, job, countJobs)
	item := MapItem(job, detailURL)

	if r.cfg.EnrichDetails {
		r.enrich(ctx, &item, job, industry, detailURL)
	}

	// Two independent writes; partial persistence is possible and is not
	// rolled back. Both stores upsert by URL, so rewrites are idempotent.
	if err := r.summaries.Save(ctx, summary); err != nil {
		status = "save_failed"
		r.logger.Error("save listing summary failed", zap.String("url", detailURL), zap.Error(err))
	}
	if err := r.items.Save(ctx, item); err != nil {
		status = "save_failed"
		r.logger.Error("save listing item failed", zap.String("url", detailURL), zap.Error(err))
	}
}

// enrich fetches the detail page and applies the labor-function and
// description fields. A failed fetch leaves the enrichment fields absent;
// the job is persisted regardless.
func (r *Runner) enrich(ctx context.Context, item *ListingItem, job Job, industry, detailURL string) {
	page, err := r.detail.Fetch(ctx, detailURL)
	if err != nil {
		r.logger.Warn("detail page unavailable, persisting without enrichment",
			zap.String("url", detailURL),
			zap.Error(err),
		)
		return
	}

	item.LaborFunction = page.LaborFunction
	if item.LaborFunction == "" {
		// Fewer selector matches than the configured ordinal: fall back to
		// the coarser upstream industry label.
		item.LaborFunction = industry
	}

	if job.HasDescription {
		if desc := strings.TrimSpace(page.Description); desc != "" {
			item.Description = &desc
		} else {
			r.logger.Debug("description node missing",
				zap.String("title", job.Title),
				zap.String("url", detailURL),
				zap.String("industry", industry),
			)
		}
	}

	if r.archive != nil && len(page.HTML) > 0 {
		name := archive.ObjectName(detailURL, r.clock.Now())
		if err := r.archive.Save(ctx, name, page.HTML); err != nil {
			r.logger.Warn("archive detail page failed", zap.String("url", detailURL), zap.Error(err))
		}
	}
}
