package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"indra/pkg/config"
	"indra/pkg/monsoon"
	"indra/pkg/oracle"
	"indra/pkg/server/handlers"
	"indra/pkg/server/middleware"
	"indra/pkg/telemetry/health"
	"indra/pkg/telemetry/metrics"
	"indra/pkg/tracks"
)

// Deps carries the long-lived components the server serves.
type Deps struct {
	Pipeline  *oracle.Pipeline
	Baseline  *tracks.Collection
	Monitor   *monsoon.Monitor
	Archive   *monsoon.Archive
	Collector *metrics.Collector
	Checker   *health.Checker
	Logger    *slog.Logger

	// Version information surfaced at /version.
	Version   string
	Commit    string
	BuildTime string
}

// Server is the HTTP API server.
type Server struct {
	config       *config.ServerConfig
	metricsCfg   *config.MetricsConfig
	deps         Deps
	logger       *slog.Logger
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates the API server.
func NewServer(cfg *config.ServerConfig, metricsCfg *config.MetricsConfig, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:       cfg,
		metricsCfg:   metricsCfg,
		deps:         deps,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	if s.config.TLS.Enabled {
		tlsConfig, err := s.configureTLS()
		if err != nil {
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting api server",
			"address", s.config.ListenAddress,
			"tls_enabled", s.config.TLS.Enabled,
		)

		var err error
		if s.config.TLS.Enabled {
			err = s.httpServer.ListenAndServeTLS(s.config.TLS.CertFile, s.config.TLS.KeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("api server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	simulateHandler := handlers.NewSimulateHandler(s.deps.Pipeline, s.logger)
	baselineHandler := handlers.NewBaselineHandler(s.deps.Baseline)
	monsoonHandler := handlers.NewMonsoonHandler(s.deps.Monitor, s.deps.Archive, s.deps.Collector, s.logger)

	// Non-streaming routes run under the per-request timeout wrapper.
	bounded := middleware.TimeoutMiddleware(s.config.HandlerTimeout)

	mux.Handle("POST /api/simulate/stream", simulateHandler)
	mux.Handle("GET /api/baseline", bounded(baselineHandler))

	mux.Handle("GET /api/streams/climate/monsoon/current", bounded(http.HandlerFunc(monsoonHandler.Current)))
	mux.Handle("POST /api/streams/climate/monsoon/simulation/set_year", bounded(http.HandlerFunc(monsoonHandler.SetYear)))
	mux.Handle("GET /api/streams/climate/monsoon/historical/{year}", bounded(http.HandlerFunc(monsoonHandler.Historical)))
	mux.Handle("GET /api/streams/climate/monsoon/scan", bounded(http.HandlerFunc(monsoonHandler.Scan)))

	if s.deps.Checker != nil {
		mux.Handle("/health", s.deps.Checker.LivenessHandler())
		mux.Handle("/ready", s.deps.Checker.ReadinessHandler())
		mux.Handle("/version", health.VersionHandler(s.deps.Version, s.deps.Commit, s.deps.BuildTime))
	}

	if s.metricsCfg != nil && s.metricsCfg.Enabled && s.deps.Collector != nil {
		mux.Handle(s.metricsCfg.Path, s.deps.Collector.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(s.corsConfig())(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.LoggingMiddleware(s.logger, s.requestRecorder())(handler)
	handler = middleware.RecoveryMiddleware(s.logger)(handler)

	return handler
}

// corsConfig converts config.CORSConfig to middleware.CORSConfig.
func (s *Server) corsConfig() *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:          s.config.CORS.Enabled,
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   s.config.CORS.AllowedMethods,
		AllowedHeaders:   s.config.CORS.AllowedHeaders,
		MaxAge:           s.config.CORS.MaxAge,
		AllowCredentials: s.config.CORS.AllowCredentials,
	}
}

// requestRecorder returns the metrics recorder, typed so a nil collector
// stays a nil interface.
func (s *Server) requestRecorder() middleware.RequestRecorder {
	if s.deps.Collector == nil {
		return nil
	}
	return s.deps.Collector
}

// configureTLS validates the certificate pair and returns the TLS config.
func (s *Server) configureTLS() (*tls.Config, error) {
	if s.config.TLS.CertFile == "" {
		return nil, fmt.Errorf("TLS cert file not specified")
	}
	if s.config.TLS.KeyFile == "" {
		return nil, fmt.Errorf("TLS key file not specified")
	}
	if _, err := os.Stat(s.config.TLS.CertFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS cert file not found: %s", s.config.TLS.CertFile)
	}
	if _, err := os.Stat(s.config.TLS.KeyFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS key file not found: %s", s.config.TLS.KeyFile)
	}

	return &tls.Config{
		MinVersion: tls.VersionTLS13,
	}, nil
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
