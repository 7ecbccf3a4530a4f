// v0
// server.go
//
// Package httpapi is the operator-facing HTTP surface, grounded on the
// teacher's HTTPServer (services/mape/internal/server.go): health,
// status, a properties-reload hook, and a prometheus scrape endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mindis/observation-management-system/internal/config"
)

// StatsProvider supplies a snapshot for /status without httpapi
// depending on the engine package directly.
type StatsProvider func() any

// Server is the operator HTTP surface.
type Server struct {
	cfg   *config.AppConfig
	lg    *slog.Logger
	http  *http.Server
	stats StatsProvider
}

// New builds a Server bound to cfg.HTTPBind.
func New(cfg *config.AppConfig, lg *slog.Logger, stats StatsProvider) *Server {
	mux := http.NewServeMux()
	s := &Server{cfg: cfg, lg: lg, http: &http.Server{Addr: cfg.HTTPBind, Handler: mux}, stats: stats}
	mux.HandleFunc("/health", s.getHealth)
	mux.HandleFunc("/status", s.getStatus)
	mux.HandleFunc("/config/reload", s.postReload)
	mux.Handle("/metrics", promhttp.Handler())
	return s
}

// Start runs the server until it errors or is shut down.
func (s *Server) Start() error {
	s.lg.Info("http start", "bind", s.cfg.HTTPBind)
	return s.http.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.lg.Info("http stop")
	return s.http.Shutdown(ctx)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if s.stats == nil {
		json.NewEncoder(w).Encode(struct{}{})
		return
	}
	_ = json.NewEncoder(w).Encode(s.stats())
}

func (s *Server) postReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.cfg.ReloadProperties(); err != nil {
		s.lg.Error("reload", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("reloaded"))
}
