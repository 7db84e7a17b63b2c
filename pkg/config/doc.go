// Package config provides configuration management for the courtmap dashboard.
//
// Configuration is read from an optional YAML file, completed with defaults,
// overridden from the environment and validated.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("courtmap.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("courtmap.yaml")
//
// An empty path loads the defaults, which is how the dashboard runs in
// container deployments configured purely through the environment.
//
// # Environment Variable Overrides
//
// Variables follow the naming convention COURTMAP_SECTION_FIELD:
//
//   - COURTMAP_SERVER_PORT overrides server.port
//   - COURTMAP_DATA_WORKBOOK_PATH overrides data.workbook_path
//   - COURTMAP_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// The unprefixed PORT, HOST, LOG_LEVEL, DATA_PROVIDER, DATA_REFRESH_INTERVAL
// (in minutes) and ENVIRONMENT are honored too; prefixed variables win when
// both are set.
//
// # Validation
//
// Validation errors include field paths:
//
//	configuration validation failed with 2 errors:
//	  - server.port: port 70000 out of range 1-65535
//	  - data.snapshots.backend: invalid backend "redis": must be 'memory', 'sqlite' or 'none'
//
// # Example Configuration
//
//	server:
//	  host: "0.0.0.0"
//	  port: 5000
//
//	data:
//	  workbook_path: "Basketball Sources Links.xlsx"
//	  refresh_interval: "60m"
//	  watch: true
//	  snapshots:
//	    backend: "sqlite"
//	    sqlite:
//	      path: "data/snapshots.db"
//	      driver: "sqlite"
//
//	share:
//	  public_origin: "https://courtmap.example"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
