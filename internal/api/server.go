// Package api exposes the operational HTTP interface for the harvester:
// health, metrics, latest run statistics, and a manual harvest trigger.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/techjobs/harvester/internal/harvest"
	"github.com/techjobs/harvester/internal/metrics"
)

// Runner is the slice of the harvest orchestrator the server needs.
type Runner interface {
	Run(ctx context.Context) (harvest.RunOutcome, error)
	Running() bool
	JobsParsed() int
}

// Server wires HTTP handlers to the runner and statistics store.
type Server struct {
	router chi.Router
	runner Runner
	stats  harvest.StatisticsStore
	logger *zap.Logger
}

// NewServer constructs a Server with its routes.
func NewServer(runner Runner, stats harvest.StatisticsStore, logger *zap.Logger) *Server {
	s := &Server{
		runner: runner,
		stats:  stats,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/statistics/latest", s.latestStatistics)
	r.Post("/harvest", s.triggerHarvest)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// healthz reports liveness plus live run progress: while a harvest is in
// flight, jobs_parsed carries the running counter.
func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{"status": "ok"}
	if s.runner.Running() {
		body["running"] = true
		body["jobs_parsed"] = s.runner.JobsParsed()
	} else {
		body["running"] = false
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) latestStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Latest(r.Context())
	if err != nil {
		s.writeError(w, http.StatusNotFound, "no completed runs")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"total_jobs_parsed":   stats.TotalJobsParsed,
		"total_time_ms":       stats.TotalTimeMs,
		"last_fetch":          stats.LastFetch,
		"descriptions_parsed": stats.DescriptionsParsed,
	})
}

func (s *Server) triggerHarvest(w http.ResponseWriter, _ *http.Request) {
	if s.runner.Running() {
		s.writeError(w, http.StatusConflict, "a harvest run is already in flight")
		return
	}

	// The run outlives the triggering request.
	go func() {
		if _, err := s.runner.Run(context.Background()); err != nil {
			s.logger.Error("triggered harvest failed", zap.Error(err))
		}
	}()

	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
