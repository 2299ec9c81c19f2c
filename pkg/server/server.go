// Package server exposes the prediction and search APIs over HTTP and
// WebSocket: one JSON endpoint per query, a streaming search socket,
// Prometheus metrics, per-IP rate limiting, and request logging.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"valley-oracle/pkg/config"
	"valley-oracle/pkg/jobs"
)

// Server wires the HTTP stack around the prediction core. The core holds
// no state; everything mutable here is serving infrastructure.
type Server struct {
	cfg         *config.Config
	logger      *logrus.Logger
	metrics     *Metrics
	rateLimiter *RateLimiter
	coordinator *jobs.Coordinator
	httpServer  *http.Server
	startTime   time.Time
}

// New constructs a Server from configuration.
func New(cfg *config.Config, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		metrics:     NewMetrics(),
		coordinator: jobs.NewCoordinator(logger),
		startTime:   time.Now(),
	}
	if cfg.RateLimitEnabled {
		s.rateLimiter = NewRateLimiter(cfg)
	}

	mux := http.NewServeMux()
	s.routes(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      s.middleware(mux),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: 0, // searches stream; the handler enforces its own deadline
		IdleTimeout:  2 * cfg.RequestTimeout,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/predict/day", s.handlePredictDay)
	mux.HandleFunc("POST /api/predict/luck", s.handlePredictLuck)
	mux.HandleFunc("POST /api/predict/dish", s.handlePredictDish)
	mux.HandleFunc("POST /api/predict/weather", s.handlePredictWeather)
	mux.HandleFunc("POST /api/predict/night-events", s.handlePredictNightEvents)
	mux.HandleFunc("POST /api/predict/cart", s.handlePredictCart)
	mux.HandleFunc("POST /api/predict/geodes", s.handlePredictGeodes)
	mux.HandleFunc("POST /api/mines/floors", s.handleMineFloors)
	mux.HandleFunc("POST /api/mines/monster-floors", s.handleMonsterFloors)
	mux.HandleFunc("POST /api/mines/dark-floors", s.handleDarkFloors)
	mux.HandleFunc("POST /api/mines/mushroom-floors", s.handleMushroomFloors)
	mux.HandleFunc("POST /api/cart/find-item", s.handleFindItemInCart)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /ws/search", s.handleSearchSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
}

// Start begins serving on the given listener (or the configured port
// when nil) and blocks until the server stops.
func (s *Server) Start(listener net.Listener) error {
	s.logger.WithFields(logrus.Fields{
		"port":    s.cfg.ServerPort,
		"version": s.cfg.DefaultVersion.String(),
	}).Info("server starting")

	if listener == nil {
		return s.httpServer.ListenAndServe()
	}
	return s.httpServer.Serve(listener)
}

// Shutdown drains in-flight requests and releases background resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
