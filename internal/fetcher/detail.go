// Package fetcher retrieves job detail pages with bounded retry and extracts
// the enrichment fields from their HTML.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/harvest"
	"github.com/techjobs/harvester/internal/metrics"
)

// Config controls the detail-page fetcher.
type Config struct {
	// UserAgent must be a desktop Chrome string for the upstream to serve
	// the fully rendered page.
	UserAgent string
	// Timeout bounds one GET attempt.
	Timeout time.Duration
	// Attempts is the total number of tries (original try plus retries).
	Attempts int
	// RetryDelay is slept between attempts.
	RetryDelay time.Duration

	Selectors SelectorConfig
}

// Fetcher implements harvest.DetailFetcher using a Colly collector.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
	logger        *zap.Logger
	sleep         func(time.Duration)
}

// New builds a Fetcher.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	cfg.Selectors = cfg.Selectors.withDefaults()

	metrics.Init()
	return &Fetcher{
		cfg:           cfg,
		baseCollector: colly.NewCollector(colly.Async(false)),
		logger:        logger,
		sleep:         time.Sleep,
	}
}

// Fetch GETs the URL, retrying per the configured policy, and extracts the
// labor-function and description fields. An error means every attempt
// failed; the caller persists the job without enrichment.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*harvest.DetailPage, error) {
	var lastErr error
	for attempt := 0; attempt < f.cfg.Attempts; attempt++ {
		if attempt > 0 {
			metrics.ObserveDetailRetry()
			f.sleep(f.cfg.RetryDelay)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("detail fetch canceled: %w", ctx.Err())
		}

		body, err := f.get(ctx, url)
		if err != nil {
			lastErr = err
			f.logger.Debug("detail page attempt failed",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		page, err := extract(body, f.cfg.Selectors)
		if err != nil {
			return nil, fmt.Errorf("parse detail page %s: %w", url, err)
		}
		return page, nil
	}
	return nil, fmt.Errorf("detail page %s unavailable after %d attempts: %w", url, f.cfg.Attempts, lastErr)
}

// get runs one GET through a cloned collector so per-request state never
// leaks between attempts.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	collector := f.baseCollector.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(f.cfg.Timeout)

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("detail fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("visit detail page: %w", err)
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("detail page response failed: %w", fetchErr)
		}
		return body, nil
	}
}
