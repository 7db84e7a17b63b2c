package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"courtmap/dashboard/pkg/cli"
	"courtmap/dashboard/pkg/teams"
)

var teamsFlags struct {
	filters filterFlags
	output  string
	options bool
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams from the workbook",
	Long: `List the teams matching the filters, or the available filter values.

Examples:
  # Table of Spanish teams
  courtmap teams --country Spain

  # Teams whose name contains "real" or "olymp", as CSV
  courtmap teams --search real,olymp --output csv

  # Countries, leagues and sports as JSON
  courtmap teams --options --output json`,
	Args: cobra.NoArgs,
	RunE: runTeams,
}

func init() {
	rootCmd.AddCommand(teamsCmd)

	teamsFlags.filters.register(teamsCmd)
	teamsCmd.Flags().StringVarP(&teamsFlags.output, "output", "o", "text", "output format (text, json, csv)")
	teamsCmd.Flags().BoolVar(&teamsFlags.options, "options", false, "list filter values instead of teams")
}

func runTeams(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(teamsFlags.output)
	if err != nil {
		return err
	}
	if teamsFlags.options && format == cli.FormatCSV {
		return cli.NewUsageError("--options cannot be printed as csv")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Shutdown()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	catalog, closeStore, err := loadCatalog(ctx, cfg)
	if err != nil {
		return cli.NewCommandError("teams", err)
	}
	defer closeStore()

	var data any
	if teamsFlags.options {
		opts, err := catalog.Options()
		if err != nil {
			return cli.NewCommandError("teams", err)
		}
		data = opts
		if format == cli.FormatText {
			data = optionsText(opts)
		}
	} else {
		ds, err := catalog.Query(teamsFlags.filters.filter())
		if err != nil {
			return cli.NewCommandError("teams", err)
		}
		data = ds
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), data)
}

// optionsText prints filter options one category per line.
type optionsText teams.Options

func (o optionsText) String() string {
	return "Countries: " + strings.Join(o.Countries, ", ") +
		"\nLeagues: " + strings.Join(o.Leagues, ", ") +
		"\nSports: " + strings.Join(o.Sports, ", ")
}
