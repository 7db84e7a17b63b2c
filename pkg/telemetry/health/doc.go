// Package health provides the dashboard's health check endpoints.
//
// # Endpoints
//
//   - /health: liveness, with version, data provider and last refresh time
//   - /ready: readiness, running every registered component check
//   - /version: build information
//
// # Usage
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.SetInfo(health.Info{
//	    Version:      version,
//	    DataProvider: cfg.Data.Provider,
//	    LastRefresh:  catalog.LastRefresh,
//	})
//	checker.RegisterCheck("teams", health.TeamsCheck(catalog))
//	checker.RegisterCheck("snapshots", health.SnapshotsCheck(snapshots))
//
//	router.Get("/health", checker.LivenessHandler())
//	router.Get("/ready", checker.ReadinessHandler())
//
// Readiness checks run concurrently, each bounded by the check timeout. A
// check that does not return in time is reported as unhealthy.
package health
