package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.port").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the whole configuration and returns a ValidationError
// listing every failed rule, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Environment != "" && !cfg.IsDevelopment() && !cfg.IsProduction() {
		errs = append(errs, FieldError{
			Field:   "environment",
			Message: fmt.Sprintf("invalid environment %q: must be 'development' or 'production'", cfg.Environment),
		})
	}

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateData(&cfg.Data)...)
	errs = append(errs, validateExport(&cfg.Export)...)
	errs = append(errs, validateShare(&cfg.Share)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, FieldError{
			Field:   "server.port",
			Message: fmt.Sprintf("port %d out of range 1-65535", cfg.Port),
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "read timeout must be positive"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "write timeout must be positive"})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.idle_timeout", Message: "idle timeout must be positive"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_header_bytes", Message: "max header bytes must be non-negative"})
	}
	if cfg.MaxUploadBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_upload_bytes", Message: "max upload bytes must be non-negative"})
	}

	return errs
}

func validateData(cfg *DataConfig) []FieldError {
	var errs []FieldError

	if cfg.Provider != "local" {
		errs = append(errs, FieldError{
			Field:   "data.provider",
			Message: fmt.Sprintf("unsupported provider %q: must be 'local'", cfg.Provider),
		})
	}
	if cfg.WorkbookPath == "" {
		errs = append(errs, FieldError{Field: "data.workbook_path", Message: "workbook path is required"})
	}
	if cfg.RefreshInterval < 0 {
		errs = append(errs, FieldError{Field: "data.refresh_interval", Message: "refresh interval must be positive"})
	}
	if cfg.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "data.refresh_schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.RefreshSchedule, err),
			})
		}
	}
	if cfg.WatchDebounce < 0 {
		errs = append(errs, FieldError{Field: "data.watch_debounce", Message: "watch debounce must be positive"})
	}

	switch cfg.Snapshots.Backend {
	case "memory", "none":
	case "sqlite":
		if cfg.Snapshots.SQLite.Path == "" {
			errs = append(errs, FieldError{
				Field:   "data.snapshots.sqlite.path",
				Message: "sqlite path is required when backend is 'sqlite'",
			})
		}
		if d := cfg.Snapshots.SQLite.Driver; d != "sqlite3" && d != "sqlite" {
			errs = append(errs, FieldError{
				Field:   "data.snapshots.sqlite.driver",
				Message: fmt.Sprintf("invalid driver %q: must be 'sqlite3' or 'sqlite'", d),
			})
		}
		if cfg.Snapshots.SQLite.BusyTimeout < 0 {
			errs = append(errs, FieldError{
				Field:   "data.snapshots.sqlite.busy_timeout",
				Message: "busy timeout must be positive",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "data.snapshots.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'memory', 'sqlite' or 'none'", cfg.Snapshots.Backend),
		})
	}
	if cfg.Snapshots.Keep < 0 {
		errs = append(errs, FieldError{Field: "data.snapshots.keep", Message: "keep must be non-negative"})
	}

	return errs
}

func validateExport(cfg *ExportConfig) []FieldError {
	var errs []FieldError

	if cfg.Filename == "" {
		errs = append(errs, FieldError{Field: "export.filename", Message: "filename is required"})
	} else if strings.ContainsAny(cfg.Filename, `/\`) {
		errs = append(errs, FieldError{Field: "export.filename", Message: "filename must not contain path separators"})
	}

	return errs
}

func validateShare(cfg *ShareConfig) []FieldError {
	if cfg.PublicOrigin == "" {
		return nil
	}

	u, err := url.Parse(cfg.PublicOrigin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []FieldError{{
			Field:   "share.public_origin",
			Message: fmt.Sprintf("invalid origin %q: must be an absolute http(s) URL", cfg.PublicOrigin),
		}}
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{Field: "telemetry.logging.level", Message: "logging level is required"})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{Field: "telemetry.logging.format", Message: "logging format is required"})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text' or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with '/' when metrics are enabled",
		})
	}

	if cfg.Health.Enabled {
		paths := map[string]string{
			"telemetry.health.liveness_path":  cfg.Health.LivenessPath,
			"telemetry.health.readiness_path": cfg.Health.ReadinessPath,
			"telemetry.health.version_path":   cfg.Health.VersionPath,
		}
		for _, field := range []string{"telemetry.health.liveness_path", "telemetry.health.readiness_path", "telemetry.health.version_path"} {
			if !strings.HasPrefix(paths[field], "/") {
				errs = append(errs, FieldError{
					Field:   field,
					Message: "path must start with '/' when health checks are enabled",
				})
			}
		}
		if cfg.Health.CheckTimeout <= 0 {
			errs = append(errs, FieldError{
				Field:   "telemetry.health.check_timeout",
				Message: "check timeout must be positive",
			})
		}
	}

	return errs
}
