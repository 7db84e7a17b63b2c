package teams

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"courtmap/dashboard/pkg/dataset"
	"courtmap/dashboard/pkg/teams/source"
	"courtmap/dashboard/pkg/teams/store"
)

// ErrNoData is returned when no team table has been loaded.
var ErrNoData = errors.New("no data available")

// Recorder receives refresh outcomes. The metrics collector implements it.
type Recorder interface {
	RecordRefresh(source, status string, rows int, duration time.Duration)
}

// Origin tells where the catalog's current data came from.
type Origin string

const (
	OriginNone     Origin = ""
	OriginSource   Origin = "source"
	OriginSnapshot Origin = "snapshot"
)

// RefreshResult describes a completed refresh.
type RefreshResult struct {
	Origin     Origin    `json:"origin"`
	Teams      int       `json:"teams_count"`
	LoadedAt   time.Time `json:"timestamp"`
	SnapshotID string    `json:"snapshot_id,omitempty"`
}

// CatalogConfig configures a Catalog.
type CatalogConfig struct {
	// Source provides the team table. Required.
	Source source.Source
	// Store keeps snapshots of good loads. Optional.
	Store store.Store
	// Interval is how old data may get before NeedsRefresh reports true.
	// Zero means data is refreshed only when nothing is loaded.
	Interval time.Duration
	// Recorder receives refresh metrics. Optional.
	Recorder Recorder
}

// Catalog holds the current team table. It is safe for concurrent use.
// Datasets handed out by Catalog are shared and must not be modified.
type Catalog struct {
	source   source.Source
	store    store.Store
	interval time.Duration
	rec      Recorder
	logger   *slog.Logger

	// refreshMu serializes refreshes; mu guards the fields below.
	refreshMu   sync.Mutex
	mu          sync.RWMutex
	data        dataset.Dataset
	origin      Origin
	lastRefresh time.Time

	now func() time.Time
}

// NewCatalog creates an empty catalog. Call Refresh to load data.
func NewCatalog(cfg CatalogConfig) (*Catalog, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	return &Catalog{
		source:   cfg.Source,
		store:    cfg.Store,
		interval: cfg.Interval,
		rec:      cfg.Recorder,
		logger:   slog.Default().With("component", "teams.catalog"),
		now:      time.Now,
	}, nil
}

// Refresh reloads the team table from the source and snapshots it.
//
// If the source fails while nothing is loaded yet, the latest snapshot is
// loaded instead and Refresh succeeds with Origin set to OriginSnapshot.
// If data is already loaded, it is kept and the source error is returned.
func (c *Catalog) Refresh(ctx context.Context) (*RefreshResult, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := c.now()
	ds, err := c.source.Load(ctx)
	if err != nil {
		c.record("error", 0, start)
		c.logger.ErrorContext(ctx, "error loading data", "source", c.source.Name(), "error", err)
		return c.fallback(ctx, err)
	}

	loadedAt := c.now()
	c.mu.Lock()
	c.data = ds
	c.origin = OriginSource
	c.lastRefresh = loadedAt
	c.mu.Unlock()

	res := &RefreshResult{Origin: OriginSource, Teams: len(ds), LoadedAt: loadedAt}
	if c.store != nil {
		snap := &store.Snapshot{Source: c.source.Name(), LoadedAt: loadedAt, Records: ds}
		snap.Columns, _ = ds.Columns()
		if err := c.store.Save(ctx, snap); err != nil {
			c.logger.WarnContext(ctx, "failed to save snapshot", "error", err)
		} else {
			res.SnapshotID = snap.ID
		}
	}

	c.record("success", len(ds), start)
	c.logger.InfoContext(ctx, "successfully loaded teams", "teams", len(ds), "source", c.source.Name())
	return res, nil
}

func (c *Catalog) fallback(ctx context.Context, cause error) (*RefreshResult, error) {
	c.mu.RLock()
	loaded := c.data != nil
	c.mu.RUnlock()

	if loaded || c.store == nil {
		return nil, cause
	}

	snap, err := c.store.Latest(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load fallback data", "error", err)
		return nil, fmt.Errorf("%w (fallback: %v)", cause, err)
	}

	c.mu.Lock()
	c.data = snap.Records
	c.origin = OriginSnapshot
	c.lastRefresh = snap.LoadedAt
	c.mu.Unlock()

	c.record("fallback", len(snap.Records), c.now())
	c.logger.WarnContext(ctx, "loaded fallback snapshot due to source error",
		"snapshot_id", snap.ID,
		"snapshot_source", snap.Source,
		"loaded_at", snap.LoadedAt,
		"teams", len(snap.Records),
	)

	return &RefreshResult{
		Origin:     OriginSnapshot,
		Teams:      len(snap.Records),
		LoadedAt:   snap.LoadedAt,
		SnapshotID: snap.ID,
	}, nil
}

func (c *Catalog) record(status string, rows int, start time.Time) {
	if c.rec != nil {
		c.rec.RecordRefresh(c.source.Name(), status, rows, c.now().Sub(start))
	}
}

// NeedsRefresh reports whether the data is missing or older than the
// configured interval at now.
func (c *Catalog) NeedsRefresh(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.lastRefresh.IsZero() {
		return true
	}
	if c.interval <= 0 {
		return false
	}
	return now.Sub(c.lastRefresh) > c.interval
}

// EnsureFresh refreshes when NeedsRefresh reports true. Refresh errors are
// logged and cached data, if any, stays in place.
func (c *Catalog) EnsureFresh(ctx context.Context) {
	if !c.NeedsRefresh(c.now()) {
		return
	}
	if _, err := c.Refresh(ctx); err != nil {
		c.logger.WarnContext(ctx, "using cached data due to refresh error", "error", err)
	}
}

// Dataset returns the current team table or ErrNoData.
func (c *Catalog) Dataset() (dataset.Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil {
		return nil, ErrNoData
	}
	return c.data, nil
}

// Query returns the teams matching f.
func (c *Catalog) Query(f Filter) (dataset.Dataset, error) {
	ds, err := c.Dataset()
	if err != nil {
		return nil, err
	}
	return f.Apply(ds), nil
}

// Team returns the team named name.
func (c *Catalog) Team(name string) (*dataset.Record, bool, error) {
	ds, err := c.Dataset()
	if err != nil {
		return nil, false, err
	}
	r, ok := Find(ds, name)
	return r, ok, nil
}

// Options returns the filter options of the current data.
func (c *Catalog) Options() (Options, error) {
	ds, err := c.Dataset()
	if err != nil {
		return Options{}, err
	}
	return BuildOptions(ds), nil
}

// LastRefresh returns when the current data was loaded. It is zero before
// the first successful load.
func (c *Catalog) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

// Origin returns where the current data came from.
func (c *Catalog) Origin() Origin {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origin
}

// Provider returns the source name.
func (c *Catalog) Provider() string {
	return c.source.Name()
}

// Count returns the number of loaded teams.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
