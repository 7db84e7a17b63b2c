package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"courtmap/dashboard/pkg/dataset"
)

func testSnapshot(source string, loadedAt time.Time, teams ...string) *Snapshot {
	ds := make(dataset.Dataset, len(teams))
	for i, team := range teams {
		ds[i] = dataset.NewRecord(
			dataset.F("Team", team),
			dataset.F("Country", "USA"),
			dataset.F("Founded", 1946+i),
		)
	}
	return &Snapshot{
		Source:   source,
		LoadedAt: loadedAt,
		Columns:  []string{"Team", "Country", "Founded"},
		Records:  ds,
	}
}

// openStores returns every backend under test.
func openStores(t *testing.T, keep int) map[string]Store {
	t.Helper()

	stores := map[string]Store{
		"memory": NewMemoryStore(keep),
	}
	for _, driver := range []string{DriverPure, DriverCGO} {
		s, err := NewSQLiteStore(&SQLiteConfig{
			Path:        filepath.Join(t.TempDir(), "snapshots.db"),
			Driver:      driver,
			WALMode:     true,
			BusyTimeout: time.Second,
			Keep:        keep,
		})
		if err != nil {
			t.Fatalf("NewSQLiteStore(%s) failed: %v", driver, err)
		}
		stores["sqlite/"+driver] = s
	}

	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_LatestEmpty(t *testing.T) {
	for name, s := range openStores(t, 3) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Latest(context.Background()); !errors.Is(err, ErrNoSnapshot) {
				t.Errorf("expected ErrNoSnapshot, got %v", err)
			}
		})
	}
}

func TestStore_SaveAndLatest(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, s := range openStores(t, 3) {
		t.Run(name, func(t *testing.T) {
			first := testSnapshot("local", base, "Lakers")
			if err := s.Save(ctx, first); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			if first.ID == "" {
				t.Error("expected Save() to assign an ID")
			}

			second := testSnapshot("upload", base.Add(time.Hour), "Celtics", "Knicks")
			if err := s.Save(ctx, second); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}

			latest, err := s.Latest(ctx)
			if err != nil {
				t.Fatalf("Latest() failed: %v", err)
			}
			if latest.ID != second.ID || latest.Source != "upload" {
				t.Errorf("expected latest snapshot %s from upload, got %s from %s", second.ID, latest.ID, latest.Source)
			}
			if !latest.LoadedAt.Equal(second.LoadedAt) {
				t.Errorf("expected loaded at %v, got %v", second.LoadedAt, latest.LoadedAt)
			}
			if len(latest.Records) != 2 {
				t.Fatalf("expected 2 records, got %d", len(latest.Records))
			}
			if got := latest.Records[1].Text("Team"); got != "Knicks" {
				t.Errorf("expected Knicks, got %q", got)
			}
			if got := latest.Records[0].Text("Founded"); got != "1946" {
				t.Errorf("expected Founded 1946, got %q", got)
			}

			cols, _ := latest.Records.Columns()
			if len(cols) != 3 || cols[0] != "Team" || cols[2] != "Founded" {
				t.Errorf("column order lost: %v", cols)
			}
			if len(latest.Columns) != 3 {
				t.Errorf("expected 3 columns, got %v", latest.Columns)
			}
		})
	}
}

func TestStore_Retention(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, s := range openStores(t, 2) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 5; i++ {
				if err := s.Save(ctx, testSnapshot("local", base.Add(time.Duration(i)*time.Minute), "Team")); err != nil {
					t.Fatalf("Save() failed: %v", err)
				}
			}

			n, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if n != 2 {
				t.Errorf("expected 2 retained snapshots, got %d", n)
			}

			latest, err := s.Latest(ctx)
			if err != nil {
				t.Fatalf("Latest() failed: %v", err)
			}
			if want := base.Add(4 * time.Minute); !latest.LoadedAt.Equal(want) {
				t.Errorf("expected newest snapshot at %v, got %v", want, latest.LoadedAt)
			}
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(1)

	snap := testSnapshot("local", time.Now(), "Lakers")
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	snap.Records[0].Set("Team", "Mutated")

	latest, _ := s.Latest(ctx)
	if latest.Records[0].Text("Team") != "Lakers" {
		t.Error("stored snapshot was mutated through the caller's copy")
	}
}

func TestStore_NumberTextSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	values := []any{1e21, 1e-6, 1.5e-7, 12.5, int64(1947), -3e25}

	fields := make([]dataset.Field, len(values))
	cols := make([]string, len(values))
	for i, v := range values {
		cols[i] = "C" + string(rune('A'+i))
		fields[i] = dataset.F(cols[i], v)
	}
	rec := dataset.NewRecord(fields...)

	for name, s := range openStores(t, 1) {
		t.Run(name, func(t *testing.T) {
			snap := &Snapshot{Source: "local", LoadedAt: time.Now(), Columns: cols, Records: dataset.Dataset{rec}}
			if err := s.Save(ctx, snap); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			latest, err := s.Latest(ctx)
			if err != nil {
				t.Fatalf("Latest() failed: %v", err)
			}
			for _, col := range cols {
				if before, after := rec.Text(col), latest.Records[0].Text(col); before != after {
					t.Errorf("%s: text %q before save, %q after", col, before, after)
				}
			}
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "snapshots.db")

	s, err := NewSQLiteStore(&SQLiteConfig{Path: path, Driver: DriverPure, WALMode: true})
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	if err := s.Save(ctx, testSnapshot("local", time.Now(), "Lakers")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(&SQLiteConfig{Path: path, Driver: DriverPure, WALMode: true})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() failed: %v", err)
	}
	if latest.Records[0].Text("Team") != "Lakers" {
		t.Errorf("unexpected snapshot after reopen: %v", latest.Records)
	}
}

func TestNewSQLiteStore_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *SQLiteConfig
	}{
		{"empty path", &SQLiteConfig{Driver: DriverPure}},
		{"unknown driver", &SQLiteConfig{Path: filepath.Join(t.TempDir(), "x.db"), Driver: "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSQLiteStore(tt.config)
			var storageErr *StorageError
			if !errors.As(err, &storageErr) {
				t.Fatalf("expected *StorageError, got %v", err)
			}
			if storageErr.Operation != "open" {
				t.Errorf("expected operation open, got %q", storageErr.Operation)
			}
		})
	}
}
