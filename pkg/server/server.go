package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"courtmap/dashboard/pkg/config"
	"courtmap/dashboard/pkg/export"
	"courtmap/dashboard/pkg/share"
	"courtmap/dashboard/pkg/teams"
	"courtmap/dashboard/pkg/telemetry/health"
	"courtmap/dashboard/pkg/telemetry/metrics"
)

// Deps are the components the server exposes over HTTP.
type Deps struct {
	// Catalog holds the team table. Required.
	Catalog *teams.Catalog

	// Exports encodes downloads. Defaults to a service without metrics.
	Exports *export.Service

	// Metrics records HTTP metrics and serves /metrics. Optional.
	Metrics *metrics.Collector

	// Snapshots backs the "snapshots" readiness check. Optional.
	Snapshots health.SnapshotCounter

	// WorkbookPath is where uploaded workbooks are written. Uploads are
	// disabled when empty.
	WorkbookPath string

	// Sheet is the worksheet uploads are validated against; empty means
	// the first sheet.
	Sheet string

	Version   string
	Commit    string
	BuildTime string
}

// Server is the dashboard HTTP server.
type Server struct {
	config       *config.Config
	deps         Deps
	health       *health.Checker
	router       http.Handler
	httpServer   *http.Server
	logger       *slog.Logger
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool

	// uploadMu serializes workbook replacement.
	uploadMu sync.Mutex
}

// NewServer creates a server and builds its routes.
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("team catalog is required")
	}
	if deps.Exports == nil {
		deps.Exports = export.NewService(nil, nil, cfg.Export.JSONPretty)
	}

	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
	checker.SetInfo(health.Info{
		Version:      deps.Version,
		DataProvider: cfg.Data.Provider,
		LastRefresh:  deps.Catalog.LastRefresh,
	})
	checker.RegisterCheck("teams", health.TeamsCheck(deps.Catalog))
	if deps.Snapshots != nil {
		checker.RegisterCheck("snapshots", health.SnapshotsCheck(deps.Snapshots))
	}

	s := &Server{
		config: cfg,
		deps:   deps,
		health: checker,
		logger: slog.Default().With("component", "server"),
	}
	s.router = s.setupRoutes()
	return s, nil
}

// Start starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress(),
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting dashboard server",
			"address", httpServer.Addr,
			"data_provider", s.config.Data.Provider,
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	}
}

// Shutdown gracefully shuts down the server, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running, httpServer := s.isRunning, s.httpServer
		s.mu.RUnlock()
		if !running {
			return
		}

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("dashboard server stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Health returns the checker behind /health and /ready.
func (s *Server) Health() *health.Checker {
	return s.health
}

// shareBuilder returns the builder for share links. Without a configured
// public origin, links point at the origin the request came in on.
func (s *Server) shareBuilder(r *http.Request) *share.Builder {
	origin := s.config.Share.PublicOrigin
	if origin == "" {
		origin = share.OriginFromRequest(r)
	}
	return share.NewBuilder(origin)
}
