package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"courtmap/dashboard/pkg/cli"
	"courtmap/dashboard/pkg/clipboard"
	"courtmap/dashboard/pkg/share"
)

var shareFlags struct {
	origin  string
	copy    bool
	noCheck bool
}

// clipboardWriter is replaced in tests.
var clipboardWriter clipboard.ClipboardWriter = clipboard.System{}

var shareCmd = &cobra.Command{
	Use:   "share TEAM",
	Short: "Print a shareable link to a team page",
	Long: `Print the dashboard link for a team, optionally copying it to the clipboard.

The origin comes from --origin or share.public_origin. The team must exist in
the workbook unless --no-check is given.

Examples:
  courtmap share "Real Madrid, Baloncesto" --origin https://courtmap.example
  courtmap share Olympiacos --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

func init() {
	rootCmd.AddCommand(shareCmd)

	shareCmd.Flags().StringVar(&shareFlags.origin, "origin", "", "dashboard origin (default share.public_origin)")
	shareCmd.Flags().BoolVar(&shareFlags.copy, "copy", false, "copy the link to the clipboard")
	shareCmd.Flags().BoolVar(&shareFlags.noCheck, "no-check", false, "do not check that the team exists")
}

func runShare(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Shutdown()

	origin := shareFlags.origin
	if origin == "" {
		origin = cfg.Share.PublicOrigin
	}
	if origin == "" {
		return cli.NewUsageError("no origin: pass --origin or set share.public_origin")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !shareFlags.noCheck {
		catalog, closeStore, err := loadCatalog(ctx, cfg)
		if err != nil {
			return cli.NewCommandError("share", err)
		}
		defer closeStore()

		if _, ok, err := catalog.Team(name); err != nil {
			return cli.NewCommandError("share", err)
		} else if !ok {
			return cli.NewCommandError("share", fmt.Errorf("team %q not found", name))
		}
	}

	link := share.NewBuilder(origin).TeamURL(name)
	fmt.Fprintln(cmd.OutOrStdout(), link)

	if shareFlags.copy {
		if clipboard.Copy(ctx, clipboardWriter, link) {
			fmt.Fprintln(cmd.ErrOrStderr(), "✓ Link copied to clipboard")
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "✗ Could not copy link to clipboard")
		}
	}
	return nil
}
