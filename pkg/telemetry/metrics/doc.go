// Package metrics provides Prometheus metrics for the dashboard.
//
// # Metrics Categories
//
//   - HTTP: request count, duration and response size per route
//   - Export: export count by format and status, rows and encoded size
//   - Data: refresh count by source and status, loaded teams, last refresh time
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	catalog := teams.NewCatalog(teams.CatalogConfig{Source: src, Recorder: collector})
//	exports := export.NewService(urls, collector, false)
//
//	router.Handle("/metrics", collector.Handler())
//
// # Prometheus Endpoint
//
//	# HELP courtmap_dashboard_exports_total Total number of exports by format and status
//	# TYPE courtmap_dashboard_exports_total counter
//	courtmap_dashboard_exports_total{format="csv",status="success"} 12
//
// # Cardinality Management
//
// Route labels are router patterns. Once 256 method and route pairs have
// been seen, further ones are recorded under the "other" route.
package metrics
