package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"courtmap/dashboard/pkg/config"
	"courtmap/dashboard/pkg/teams"
	"courtmap/dashboard/pkg/teams/source"
	"courtmap/dashboard/pkg/teams/store"
)

// filterFlags are the team filters shared by export and teams.
type filterFlags struct {
	country string
	league  string
	sport   string
	search  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.country, "country", "", "only teams from this country")
	cmd.Flags().StringVar(&f.league, "league", "", "only teams in this league")
	cmd.Flags().StringVar(&f.sport, "sport", "", "only teams playing this sport")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "comma-separated team name terms, any may match")
}

func (f *filterFlags) filter() teams.Filter {
	return teams.Filter{
		Country: f.country,
		League:  f.league,
		Sport:   f.sport,
		Search:  f.search,
	}
}

// openStore opens the configured snapshot store. It returns nil for the
// "none" backend.
func openStore(cfg *config.SnapshotConfig) (store.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		st, err := store.NewSQLiteStore(&store.SQLiteConfig{
			Path:         cfg.SQLite.Path,
			Driver:       cfg.SQLite.Driver,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			WALMode:      cfg.SQLite.WALMode,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
			Keep:         cfg.Keep,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		return st, nil
	case "memory":
		return store.NewMemoryStore(cfg.Keep), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot backend: %s", cfg.Backend)
	}
}

// newCatalog builds the team catalog over the configured workbook.
func newCatalog(cfg *config.Config, st store.Store, rec teams.Recorder) (*teams.Catalog, error) {
	return teams.NewCatalog(teams.CatalogConfig{
		Source:   source.NewWorkbook(cfg.Data.WorkbookPath, cfg.Data.Sheet),
		Store:    st,
		Interval: cfg.Data.RefreshInterval,
		Recorder: rec,
	})
}

// loadCatalog opens the store, builds the catalog and loads it once. The
// returned close function releases the store.
func loadCatalog(ctx context.Context, cfg *config.Config) (*teams.Catalog, func(), error) {
	st, err := openStore(&cfg.Data.Snapshots)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if st != nil {
			if err := st.Close(); err != nil {
				slog.Warn("failed to close snapshot store", "error", err)
			}
		}
	}

	catalog, err := newCatalog(cfg, st, nil)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	if _, err := catalog.Refresh(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to load teams: %w", err)
	}
	return catalog, closeStore, nil
}
