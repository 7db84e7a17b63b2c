package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"courtmap/dashboard/pkg/telemetry/health"
)

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	// Recovery is innermost so a recovered panic is logged and counted
	// as the 500 it becomes.
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	if s.deps.Metrics != nil {
		r.Use(MetricsMiddleware(s.deps.Metrics))
	}
	r.Use(RecoveryMiddleware)

	hc := s.config.Telemetry.Health
	if hc.Enabled {
		r.Get(hc.LivenessPath, s.health.LivenessHandler())
		r.Get(hc.ReadinessPath, s.health.ReadinessHandler())
		r.Get(hc.VersionPath, health.VersionHandler(s.deps.Version, s.deps.Commit, s.deps.BuildTime))
	}

	mc := s.config.Telemetry.Metrics
	if mc.Enabled && s.deps.Metrics != nil {
		r.Handle(mc.Path, s.deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/teams", s.handleTeams)
		r.Get("/teams/export.csv", s.handleExportCSV)
		r.Get("/teams/export.json", s.handleExportJSON)
		r.Get("/share/{name}", s.handleShare)
		r.Post("/refresh-data", s.handleRefresh)
	})

	r.Get("/team/{name}", s.handleTeam)
	r.Post("/update-database", s.handleUpload)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
