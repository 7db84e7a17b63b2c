package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"courtmap/dashboard/pkg/cli"
	"courtmap/dashboard/pkg/dataset"
	"courtmap/dashboard/pkg/export"
	"courtmap/dashboard/pkg/teams"
)

var exportFlags struct {
	filters  filterFlags
	format   string
	dir      string
	filename string
	split    string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered teams to a file",
	Long: `Export the teams matching the filters as CSV or JSON, the same file the
dashboard download produces.

With --split, one file is written per distinct country, league or sport,
named <filename>_<value>.<ext>.

Examples:
  # Write every team to teams_data.csv in the export directory
  courtmap export

  # EuroLeague teams as JSON
  courtmap export --league EuroLeague --format json --filename euroleague.json

  # One CSV per country
  courtmap export --split country --dir exports`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportFlags.filters.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "csv", "file format (csv, json)")
	exportCmd.Flags().StringVarP(&exportFlags.dir, "dir", "d", "", "output directory (default export.dir)")
	exportCmd.Flags().StringVar(&exportFlags.filename, "filename", "", "output file name (default export.filename)")
	exportCmd.Flags().StringVar(&exportFlags.split, "split", "", "write one file per country, league or sport")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Shutdown()

	format := strings.ToLower(exportFlags.format)
	if format != "csv" && format != "json" {
		return cli.NewUsageError("unknown export format %q (want csv or json)", exportFlags.format)
	}
	column, err := splitColumn(exportFlags.split)
	if err != nil {
		return err
	}

	dir := exportFlags.dir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	filename := exportFlags.filename
	if filename == "" {
		filename = withExt(cfg.Export.Filename, "."+format)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	catalog, closeStore, err := loadCatalog(ctx, cfg)
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	defer closeStore()

	ds, err := catalog.Query(exportFlags.filters.filter())
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	if len(ds) == 0 {
		return cli.NewCommandError("export", fmt.Errorf("no teams match the filters"))
	}

	svc := export.NewService(nil, nil, cfg.Export.JSONPretty)
	fn := svc.ExportCSV
	if format == "json" {
		fn = svc.ExportJSON
	}
	downloader := export.NewDirDownloader(dir)

	if column == "" {
		if err := fn(ctx, ds, filename, downloader); err != nil {
			return cli.NewCommandError("export", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d teams to %s\n", len(ds), filepath.Join(dir, filepath.Base(filename)))
		return nil
	}

	groups := groupBy(ds, column)
	progress := cli.NewProgressReporter(cmd.ErrOrStderr(), "Exporting")
	progress.Start(int64(len(groups)))
	for i, g := range groups {
		name := splitFilename(filename, g.value)
		if err := fn(ctx, g.teams, name, downloader); err != nil {
			progress.Error(err)
			return cli.NewCommandError("export", fmt.Errorf("%s: %w", name, err))
		}
		progress.Update(int64(i + 1))
	}
	progress.Finish()

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d teams to %d files in %s\n", len(ds), len(groups), dir)
	return nil
}

func splitColumn(by string) (string, error) {
	switch strings.ToLower(by) {
	case "":
		return "", nil
	case "country":
		return teams.ColumnCountry, nil
	case "league":
		return teams.ColumnLeague, nil
	case "sport", "sports":
		return teams.ColumnSports, nil
	default:
		return "", cli.NewUsageError("cannot split by %q (want country, league or sport)", by)
	}
}

type group struct {
	value string
	teams dataset.Dataset
}

// groupBy partitions ds by the text of column, sorted by value. Teams with
// no value are grouped under "unknown".
func groupBy(ds dataset.Dataset, column string) []group {
	index := make(map[string]int)
	var groups []group
	for _, r := range ds {
		v := r.Text(column)
		if v == "" {
			v = "unknown"
		}
		i, ok := index[v]
		if !ok {
			i = len(groups)
			index[v] = i
			groups = append(groups, group{value: v})
		}
		groups[i].teams = append(groups[i].teams, r)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].value < groups[b].value })
	return groups
}

// splitFilename returns base_<value>.ext with value reduced to a safe
// file name fragment.
func splitFilename(base, value string) string {
	ext := filepath.Ext(base)
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, value)
	return strings.TrimSuffix(base, ext) + "_" + slug + ext
}

func withExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
