// Package logging provides structured logging for the dashboard.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text and console output
//   - Context-aware logging with request, team and export identifiers
//   - A runtime-adjustable level shared by derived loggers
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	logger.SetDefault()
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.WithContext(ctx).Info("teams exported", "rows", 42)
//
// Packages that do not hold a *Logger log through slog.Default() with a
// "component" attribute, which SetDefault routes through this logger.
package logging
