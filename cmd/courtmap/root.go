package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"courtmap/dashboard/pkg/cli"
	"courtmap/dashboard/pkg/config"
	"courtmap/dashboard/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "courtmap",
	Short: "Courtmap - basketball teams dashboard",
	Long: `Courtmap serves a dashboard of basketball teams loaded from an Excel
workbook, with filtering, CSV and JSON export, and shareable team links.

Configuration is read from the file given with --config, then overridden by
PORT, HOST, LOG_LEVEL, DATA_PROVIDER, DATA_REFRESH_INTERVAL, ENVIRONMENT and
COURTMAP_<SECTION>_<FIELD> environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the code matching the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults only when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// loadConfig returns the process configuration, loading it from cfgFile
// on first use.
func loadConfig() (*config.Config, error) {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg, nil
	}
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}
	return config.GetConfig(), nil
}

// setupLogging installs the configured logger as the slog default. It has
// to run before any component is built, since components capture the
// default logger when constructed.
func setupLogging(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	lc := logging.ConfigFrom(cfg.Telemetry.Logging, w)
	if verbose {
		lc.Level = "debug"
	}

	logger, err := logging.New(lc)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	logger.SetDefault()
	return logger, nil
}
