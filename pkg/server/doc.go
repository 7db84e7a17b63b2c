// Package server provides the dashboard's HTTP server.
//
// # Routes
//
//   - GET /health, /ready, /version: health endpoints
//   - GET /metrics: Prometheus metrics
//   - GET /api/options: distinct countries, leagues and sports
//   - GET /api/teams: teams filtered by country, league, sport and search
//   - GET /api/teams/export.csv, /api/teams/export.json: filtered teams as a download
//   - GET /api/share/{name}: shareable link for a team
//   - GET /team/{name}: a single team
//   - POST /api/refresh-data: reload the team data
//   - POST /update-database: replace the workbook (local provider only)
//
// # Middleware Chain
//
// Requests pass through, outermost first:
//  1. RequestID: reuses X-Request-ID or generates a UUID
//  2. Logging: one structured line per request
//  3. Metrics: HTTP metrics labelled by route pattern
//  4. Recovery: turns panics into 500 responses
//
// # Usage
//
//	srv, err := server.NewServer(cfg, server.Deps{
//	    Catalog:      catalog,
//	    Exports:      exports,
//	    Metrics:      collector,
//	    Snapshots:    snapshots,
//	    WorkbookPath: cfg.Data.WorkbookPath,
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx)
//
// Start blocks until ctx is cancelled, then drains in-flight requests for up
// to server.shutdown_timeout.
package server
