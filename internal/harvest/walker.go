package harvest

import (
	"context"

	"go.uber.org/zap"
)

// walkIndustry drives pagination for one industry. Pages are fetched
// sequentially; the walk ends when the upstream reports no more results.
// A transport or decode error on a page truncates the remaining pagination
// for this industry rather than being retried.
func (r *Runner) walkIndustry(ctx context.Context, industry string) {
	for page := 0; ; page++ {
		if ctx.Err() != nil {
			r.logger.Warn("industry walk canceled",
				zap.String("industry", industry),
				zap.Int("page", page),
			)
			return
		}
		if !r.fetchPage(ctx, industry, page) {
			r.logger.Info("industry walk finished",
				zap.String("industry", industry),
				zap.Int("pages", page+1),
			)
			return
		}
	}
}
