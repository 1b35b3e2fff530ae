package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newHarvestCmd creates the 'harvest' subcommand: run the full sweep a fixed
// number of times, then exit.
func newHarvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Runs the harvest sweep and exits",
		Long: `Executes the configured number of full harvest runs back to back.
Each run wipes the previous run's listings, walks every industry, and
records a statistics row.`,
		RunE: runHarvestCommand,
	}
	return cmd
}

func runHarvestCommand(cmd *cobra.Command, _ []string) error {
	d, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	for i := 0; i < d.cfg.Harvest.RunsPerStart; i++ {
		outcome, err := d.runner.Run(cmd.Context())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("harvest run %d: %w", i+1, err)
		}
		d.logger.Info("harvest pass complete",
			zap.Int("pass", i+1),
			zap.Int("passes", d.cfg.Harvest.RunsPerStart),
			zap.Int("jobs_processed", outcome.JobsProcessed),
			zap.Int64("duration_ms", outcome.DurationMs),
		)
	}
	return nil
}
