// Package telemetry groups the dashboard's observability packages.
//
// # Components
//
//   - logging: structured logging over log/slog with request, team and
//     export identifiers taken from the context
//   - metrics: Prometheus collector for HTTP requests, exports and data
//     refreshes, served on /metrics
//   - health: liveness, readiness and version endpoints
//
// The server wires all three; library packages only log through
// slog.Default() and report through small recorder interfaces, so they do
// not import telemetry.
package telemetry
