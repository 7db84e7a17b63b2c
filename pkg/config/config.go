package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration structure for the courtmap dashboard.
type Config struct {
	// Environment names the deployment environment.
	// Options: "development", "production"
	// Default: "development"
	Environment string `yaml:"environment"`

	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Data contains team data source, refresh and snapshot configuration.
	Data DataConfig `yaml:"data"`

	// Export contains CSV/JSON export configuration.
	Export ExportConfig `yaml:"export"`

	// Share contains shareable link configuration.
	Share ShareConfig `yaml:"share"`

	// Telemetry contains logging, metrics and health check configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// IsProduction reports whether the environment is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// IsDevelopment reports whether the environment is "development".
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// Host is the interface to listen on.
	// Default: "0.0.0.0"
	Host string `yaml:"host"`

	// Port is the TCP port to listen on.
	// Default: 5000
	Port int `yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for in-flight requests
	// during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxUploadBytes limits the size of uploaded workbooks.
	// Default: 33554432 (32MB)
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// ListenAddress returns host:port.
func (s ServerConfig) ListenAddress() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DataConfig contains configuration for loading team data.
type DataConfig struct {
	// Provider is the data source type. Only "local" (a workbook on disk)
	// is supported.
	// Default: "local"
	Provider string `yaml:"provider"`

	// WorkbookPath is the Excel workbook holding the teams.
	// Default: "Basketball Sources Links.xlsx"
	WorkbookPath string `yaml:"workbook_path"`

	// Sheet selects the worksheet. Empty selects the first sheet.
	Sheet string `yaml:"sheet"`

	// RefreshInterval is how old loaded data may get before it is reloaded.
	// Default: 60m
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// RefreshSchedule is an optional cron expression for background refreshes.
	// When empty, background refreshes run every RefreshInterval.
	RefreshSchedule string `yaml:"refresh_schedule"`

	// Watch reloads the data when the workbook file changes.
	// Default: false
	Watch bool `yaml:"watch"`

	// WatchDebounce is the quiet period before a watched change triggers a reload.
	// Default: 500ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// Snapshots configures the cache of the last good load.
	Snapshots SnapshotConfig `yaml:"snapshots"`
}

// SnapshotConfig contains configuration for the snapshot store.
type SnapshotConfig struct {
	// Backend selects the store.
	// Options: "memory", "sqlite", "none"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Keep is the number of newest snapshots retained.
	// Default: 10
	Keep int `yaml:"keep"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains SQLite database configuration.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/snapshots.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite3" (cgo), "sqlite" (pure Go)
	// Default: "sqlite3"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ExportConfig contains configuration for dataset exports.
type ExportConfig struct {
	// Filename is the default CSV download name.
	// Default: "teams_data.csv"
	Filename string `yaml:"filename"`

	// JSONPretty indents JSON exports.
	// Default: false
	JSONPretty bool `yaml:"json_pretty"`

	// Dir is where the CLI saves exports.
	// Default: "."
	Dir string `yaml:"dir"`
}

// ShareConfig contains configuration for shareable links.
type ShareConfig struct {
	// PublicOrigin is the scheme and host used in shareable links, e.g.
	// "https://courtmap.example". When empty the server derives it from
	// each request.
	PublicOrigin string `yaml:"public_origin"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "courtmap"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "dashboard"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for request duration (seconds).
	// Default: [0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health check endpoints are enabled.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness endpoint.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// VersionPath is the path for the version endpoint.
	// Default: "/version"
	VersionPath string `yaml:"version_path"`

	// CheckTimeout is the timeout for individual component health checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}
