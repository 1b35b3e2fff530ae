package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/api"
	"github.com/techjobs/harvester/internal/scheduler"
)

// newServeCmd creates the 'serve' subcommand: run the ops HTTP server and
// the cron schedule until interrupted.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the scheduled harvester with an ops HTTP server",
		Long: `Starts the operational HTTP server (health, metrics, latest run
statistics, manual trigger) and a cron schedule that fires harvest runs
at the configured interval. An initial run fires immediately.`,
		RunE: runServeCommand,
	}
	return cmd
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	d, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	sched := scheduler.New(d.runner, d.cfg.Harvest.Schedule, d.logger)
	if err := sched.Start(cmd.Context()); err != nil {
		return err
	}
	defer sched.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", d.cfg.Server.Port),
		Handler:           api.NewServer(d.runner, d.stats, d.logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("ops server listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-cmd.Context().Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			d.logger.Warn("ops server shutdown failed", zap.Error(err))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ops server: %w", err)
	}
}
