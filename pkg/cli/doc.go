/*
Package cli provides command-line helpers for the courtmap command.

Output Formatting:

Team tables can be printed as an aligned table, JSON, or CSV. The CSV output
uses the same encoder as the dashboard download:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, ds); err != nil {
		return err
	}

Progress Reporting:

Multi-file exports report progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr, "Exporting")
	progress.Start(int64(len(groups)))
	for i, g := range groups {
		// write g
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Errors:

ExitCode maps ConfigError, UsageError and everything else to the process
exit status.
*/
package cli
