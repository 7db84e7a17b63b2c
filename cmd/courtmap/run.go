package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"courtmap/dashboard/pkg/cli"
	"courtmap/dashboard/pkg/config"
	"courtmap/dashboard/pkg/export"
	"courtmap/dashboard/pkg/server"
	"courtmap/dashboard/pkg/teams/refresh"
	"courtmap/dashboard/pkg/telemetry/logging"
	"courtmap/dashboard/pkg/telemetry/metrics"
)

var runFlags struct {
	host     string
	port     int
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the dashboard server",
	Long: `Start the dashboard HTTP server with the specified configuration.

The workbook is loaded at startup and refreshed on the configured schedule,
when it changes on disk (data.watch), or when a request finds it stale.

Examples:
  # Start with default config
  courtmap run

  # Start with custom config
  courtmap run --config /etc/courtmap/config.yaml

  # Override the port
  courtmap run --port 8080

  # Validate config without starting server
  courtmap run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.host, "host", "", "override listen host")
	runCmd.Flags().IntVarP(&runFlags.port, "port", "p", 0, "override listen port")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.host != "" {
		cfg.Server.Host = runFlags.host
	}
	if runFlags.port != 0 {
		cfg.Server.Port = runFlags.port
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("flags", err.Error())
	}

	logger, err := setupLogging(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer logger.Shutdown()

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	printBanner(cmd, cfg)

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	if cfgFile != "" {
		go reloadOnHangup(ctx, logger)
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	st, err := openStore(&cfg.Data.Snapshots)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	if st != nil {
		defer st.Close()
	}

	catalog, err := newCatalog(cfg, st, collector)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	// The server starts without data; /api/teams answers "No data available"
	// until a later refresh succeeds.
	if res, err := catalog.Refresh(ctx); err != nil {
		slog.Warn("initial data load failed", "error", err)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Teams loaded (%d teams, from %s)\n", res.Teams, res.Origin)
	}

	scheduler := refresh.NewScheduler(catalog, refresh.Schedule(cfg.Data.RefreshSchedule, cfg.Data.RefreshInterval))
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer scheduler.Stop()

	if cfg.Data.Watch {
		watcher, err := refresh.NewWatcher(refresh.WatcherConfig{
			Path:             cfg.Data.WorkbookPath,
			DebounceInterval: cfg.Data.WatchDebounce,
		}, catalog)
		if err != nil {
			slog.Warn("workbook watcher disabled", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					slog.Error("workbook watcher stopped", "error", err)
				}
			}()
			defer watcher.Stop()
		}
	}

	srv, err := server.NewServer(cfg, server.Deps{
		Catalog:      catalog,
		Exports:      export.NewService(nil, collector, cfg.Export.JSONPretty),
		Metrics:      collector,
		Snapshots:    st,
		WorkbookPath: cfg.Data.WorkbookPath,
		Sheet:        cfg.Data.Sheet,
		Version:      Version,
		Commit:       GitCommit,
		BuildTime:    BuildDate,
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	addr := cfg.Server.ListenAddress()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Server listening on %s\n", addr)
	if cfg.Telemetry.Health.Enabled {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Health endpoint: http://%s%s\n", addr, cfg.Telemetry.Health.LivenessPath)
	}
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Metrics endpoint: http://%s%s\n", addr, cfg.Telemetry.Metrics.Path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Server stopped")
	return nil
}

// reloadOnHangup re-reads the config file on SIGHUP. Only the log level
// takes effect without a restart.
func reloadOnHangup(ctx context.Context, logger *logging.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			level, err := reloadLogLevel(cfgFile, runFlags.logLevel, logger)
			if err != nil {
				slog.Error("config reload failed", "path", cfgFile, "error", err)
				continue
			}
			slog.Info("configuration reloaded", "path", cfgFile, "log_level", level)
		}
	}
}

// reloadLogLevel reloads path and applies its log level to logger. A level
// given on the command line is kept over the file's and stays in the
// reloaded configuration.
func reloadLogLevel(path, override string, logger *logging.Logger) (string, error) {
	if err := config.ReloadConfig(path); err != nil {
		return "", err
	}
	cfg := config.GetConfig()
	if override != "" {
		cfg.Telemetry.Logging.Level = override
	}

	level := cfg.Telemetry.Logging.Level
	if err := logger.SetLevel(level); err != nil {
		return "", err
	}
	return level, nil
}

func printBanner(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Courtmap v%s (%s)\n", Version, cfg.Environment)
	if cfgFile != "" {
		fmt.Fprintf(out, "Loading configuration from: %s\n", cfgFile)
	}
	fmt.Fprintln(out, "✓ Configuration loaded")

	slog.Debug("data source configured",
		"provider", cfg.Data.Provider,
		"workbook", cfg.Data.WorkbookPath,
		"snapshots", cfg.Data.Snapshots.Backend,
	)
}
