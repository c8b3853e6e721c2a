// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/coinlens/coinlens/internal/api/handler/api"
	"github.com/coinlens/coinlens/internal/api/handler/web"
	"github.com/coinlens/coinlens/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the coinlens HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host          string
	Port          int
	DefaultSymbol string
	MetricsPath   string // empty disables the metrics endpoint
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(cfg Config, fetcher apihandler.SeriesFetcher, reg *metrics.Registry, logger *zap.Logger) (*Server, error) {
	mux := http.NewServeMux()

	var handler http.Handler = mux
	if reg != nil {
		handler = metrics.HTTPMiddleware(reg)(mux)
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second, // a long window can take many upstream pages
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	if err := s.setupRoutes(cfg, fetcher, reg); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, fetcher apihandler.SeriesFetcher, reg *metrics.Registry) error {
	webHandler, err := web.NewHandler()
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}

	s.mux.HandleFunc("/", webHandler.Index)
	s.mux.HandleFunc("/static/", webHandler.Static)

	seriesHandler := apihandler.NewSeriesHandler(fetcher, cfg.DefaultSymbol)
	s.mux.HandleFunc("/api/v1/series", seriesHandler.Get)
	s.mux.HandleFunc("/api/v1/datatypes", apihandler.DataTypes)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if reg != nil && cfg.MetricsPath != "" {
		s.mux.Handle(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	return nil
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler (for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
