package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "COURTMAP_"

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded on top of DefaultConfig, remaining zero values are
// defaulted and the result is validated. An empty path yields the defaults.
// Environment variables are not consulted; use LoadConfigWithEnvOverrides
// for that.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides.
//
// The loading sequence is:
//  1. Defaults
//  2. YAML from path (optional)
//  3. Deployment variables PORT, HOST, LOG_LEVEL, DATA_PROVIDER,
//     DATA_REFRESH_INTERVAL (minutes) and ENVIRONMENT
//  4. COURTMAP_SECTION_FIELD variables (e.g. COURTMAP_SERVER_PORT)
//  5. Validation
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyDeploymentEnv(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyDeploymentEnv applies the unprefixed variables used by existing
// deployments of the dashboard.
func applyDeploymentEnv(cfg *Config) {
	if val := os.Getenv("PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = i
		}
	}
	if val := os.Getenv("HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = normalizeLevel(val)
	}
	if val := os.Getenv("DATA_PROVIDER"); val != "" {
		cfg.Data.Provider = val
	}
	if val := os.Getenv("DATA_REFRESH_INTERVAL"); val != "" {
		if m, err := strconv.Atoi(val); err == nil {
			cfg.Data.RefreshInterval = time.Duration(m) * time.Minute
		}
	}
	if val := os.Getenv("ENVIRONMENT"); val != "" {
		cfg.Environment = val
	}
}

// applyEnvOverrides applies COURTMAP_SECTION_FIELD overrides.
func applyEnvOverrides(cfg *Config) {
	envString("ENVIRONMENT", &cfg.Environment)

	// Server overrides
	envString("SERVER_HOST", &cfg.Server.Host)
	envInt("SERVER_PORT", &cfg.Server.Port)
	envDuration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	envDuration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	envDuration("SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	envDuration("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	envInt("SERVER_MAX_HEADER_BYTES", &cfg.Server.MaxHeaderBytes)
	if val := os.Getenv(EnvPrefix + "SERVER_MAX_UPLOAD_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxUploadBytes = i
		}
	}

	// Data overrides
	envString("DATA_PROVIDER", &cfg.Data.Provider)
	envString("DATA_WORKBOOK_PATH", &cfg.Data.WorkbookPath)
	envString("DATA_SHEET", &cfg.Data.Sheet)
	envDuration("DATA_REFRESH_INTERVAL", &cfg.Data.RefreshInterval)
	envString("DATA_REFRESH_SCHEDULE", &cfg.Data.RefreshSchedule)
	envBool("DATA_WATCH", &cfg.Data.Watch)
	envDuration("DATA_WATCH_DEBOUNCE", &cfg.Data.WatchDebounce)
	envString("DATA_SNAPSHOTS_BACKEND", &cfg.Data.Snapshots.Backend)
	envInt("DATA_SNAPSHOTS_KEEP", &cfg.Data.Snapshots.Keep)
	envString("DATA_SNAPSHOTS_SQLITE_PATH", &cfg.Data.Snapshots.SQLite.Path)
	envString("DATA_SNAPSHOTS_SQLITE_DRIVER", &cfg.Data.Snapshots.SQLite.Driver)
	envBool("DATA_SNAPSHOTS_SQLITE_WAL_MODE", &cfg.Data.Snapshots.SQLite.WALMode)
	envDuration("DATA_SNAPSHOTS_SQLITE_BUSY_TIMEOUT", &cfg.Data.Snapshots.SQLite.BusyTimeout)

	// Export overrides
	envString("EXPORT_FILENAME", &cfg.Export.Filename)
	envBool("EXPORT_JSON_PRETTY", &cfg.Export.JSONPretty)
	envString("EXPORT_DIR", &cfg.Export.Dir)

	// Share overrides
	envString("SHARE_PUBLIC_ORIGIN", &cfg.Share.PublicOrigin)

	// Telemetry overrides
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = normalizeLevel(val)
	}
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TELEMETRY_HEALTH_ENABLED", &cfg.Telemetry.Health.Enabled)
	envDuration("TELEMETRY_HEALTH_CHECK_TIMEOUT", &cfg.Telemetry.Health.CheckTimeout)
}

// normalizeLevel maps level names such as "INFO" or "WARNING" onto the
// configuration's level options.
func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "warning":
		return "warn"
	case "critical", "fatal":
		return "error"
	}
	return level
}

func envString(key string, dst *string) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
