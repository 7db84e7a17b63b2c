package config

import "time"

// Default values for configuration fields.
const (
	DefaultEnvironment = "development"

	// Server defaults
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 5000
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576  // 1MB
	DefaultMaxUploadBytes  = 33554432 // 32MB

	// Data defaults
	DefaultDataProvider       = "local"
	DefaultWorkbookPath       = "Basketball Sources Links.xlsx"
	DefaultRefreshInterval    = 60 * time.Minute
	DefaultWatchDebounce      = 500 * time.Millisecond
	DefaultSnapshotBackend    = "sqlite"
	DefaultSnapshotKeep       = 10
	DefaultSQLitePath         = "data/snapshots.db"
	DefaultSQLiteDriver       = "sqlite3"
	DefaultSQLiteMaxOpenConns = 4
	DefaultSQLiteWALMode      = true
	DefaultSQLiteBusyTimeout  = 5 * time.Second

	// Export defaults
	DefaultExportFilename = "teams_data.csv"
	DefaultExportDir      = "."

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "courtmap"
	DefaultMetricsSubsystem   = "dashboard"
	DefaultHealthEnabled      = true
	DefaultLivenessPath       = "/health"
	DefaultReadinessPath      = "/ready"
	DefaultVersionPath        = "/version"
	DefaultHealthCheckTimeout = 5 * time.Second
)

// DefaultRequestDurationBuckets are the default HTTP latency buckets in seconds.
var DefaultRequestDurationBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// DefaultConfig returns a configuration with every field set to its default.
// Boolean options that default to true are only settable this way, so YAML
// is decoded on top of DefaultConfig rather than into a zero Config.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Data.Snapshots.SQLite.WALMode = DefaultSQLiteWALMode
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Health.Enabled = DefaultHealthEnabled
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for any fields that have zero values.
// It is idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}

	// Data defaults
	if cfg.Data.Provider == "" {
		cfg.Data.Provider = DefaultDataProvider
	}
	if cfg.Data.WorkbookPath == "" {
		cfg.Data.WorkbookPath = DefaultWorkbookPath
	}
	if cfg.Data.RefreshInterval == 0 {
		cfg.Data.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Data.WatchDebounce == 0 {
		cfg.Data.WatchDebounce = DefaultWatchDebounce
	}
	if cfg.Data.Snapshots.Backend == "" {
		cfg.Data.Snapshots.Backend = DefaultSnapshotBackend
	}
	if cfg.Data.Snapshots.Keep == 0 {
		cfg.Data.Snapshots.Keep = DefaultSnapshotKeep
	}
	sqlite := &cfg.Data.Snapshots.SQLite
	if sqlite.Path == "" {
		sqlite.Path = DefaultSQLitePath
	}
	if sqlite.Driver == "" {
		sqlite.Driver = DefaultSQLiteDriver
	}
	if sqlite.MaxOpenConns == 0 {
		sqlite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if sqlite.BusyTimeout == 0 {
		sqlite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Export defaults
	if cfg.Export.Filename == "" {
		cfg.Export.Filename = DefaultExportFilename
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = DefaultExportDir
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = append([]float64(nil), DefaultRequestDurationBuckets...)
	}
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultLivenessPath
	}
	if cfg.Telemetry.Health.ReadinessPath == "" {
		cfg.Telemetry.Health.ReadinessPath = DefaultReadinessPath
	}
	if cfg.Telemetry.Health.VersionPath == "" {
		cfg.Telemetry.Health.VersionPath = DefaultVersionPath
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}
