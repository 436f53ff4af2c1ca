package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hanactl/internal/config"
	"hanactl/internal/transfer"
)

// Server exposes run progress and prometheus metrics during long transfer
// runs. JSON only; it is an operator surface, not part of the wire protocol.
type Server struct {
	cfg    config.Config
	runner *transfer.Runner
}

func New(cfg config.Config, r *transfer.Runner) *Server {
	return &Server{cfg: cfg, runner: r}
}

func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.DashboardHost, s.cfg.DashboardPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state := s.runner.State()

	var lastRound any
	if state.LastRound != nil {
		lastRound = state.LastRound.Format(time.RFC3339Nano)
	}
	resp := map[string]any{
		"is_running":           state.IsRunning,
		"last_round":           lastRound,
		"round_count":          state.RoundCount,
		"run_interval_seconds": s.cfg.RunIntervalSeconds,
		"jobs_fetched":         state.JobsFetched,
		"jobs_deleted":         state.JobsDeleted,
		"error_count":          state.ErrorCount,
		"last_error":           state.LastError,
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}
