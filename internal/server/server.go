// Package server exposes a fetched data directory as a small read-only
// HTTP API so normalized benchmark files can be browsed without shipping
// them anywhere.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	DataDir         string
	EnableMetrics   bool
	EnableCORS      bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            8080,
		DataDir:         "data",
		EnableMetrics:   true,
		EnableCORS:      true,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

type serverMetrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newServerMetrics() *serverMetrics {
	m := &serverMetrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchkit_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "benchkit_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
	m.registry.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// Server serves the normalized dataset files over HTTP
type Server struct {
	config     *Config
	router     *mux.Router
	httpServer *http.Server
	metrics    *serverMetrics
}

// New creates a new dataset server over the given data directory
func New(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if _, err := os.Stat(config.DataDir); err != nil {
		return nil, fmt.Errorf("data directory %s is not readable: %w", config.DataDir, err)
	}

	s := &Server{
		config:  config,
		metrics: newServerMetrics(),
	}
	s.router = s.setupRouter()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s, nil
}

// Addr returns the address the server is configured to listen on
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the configured router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()

	if s.config.EnableCORS {
		router.Use(s.corsMiddleware)
	}
	router.Use(s.loggingMiddleware)
	router.Use(s.metricsMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/datasets", s.listDatasets).Methods("GET")
	api.HandleFunc("/datasets/{name}", s.getDataset).Methods("GET")

	if s.config.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	}

	router.HandleFunc("/health", s.healthCheck)

	return router
}

// Start runs the server until the context is cancelled or a shutdown
// signal arrives
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", s.httpServer.Addr).
			Str("data_dir", s.config.DataDir).
			Msg("Dataset server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sigCh:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	log.Info().Msg("Shutting down dataset server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
