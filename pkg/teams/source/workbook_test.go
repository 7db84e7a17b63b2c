package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"courtmap/dashboard/pkg/dataset"
)

// writeWorkbook creates a workbook whose first sheet holds rows.
func writeWorkbook(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	return f
}

func saveWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := writeWorkbook(t, rows)
	defer f.Close()

	path := filepath.Join(t.TempDir(), "teams.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestWorkbook_Load(t *testing.T) {
	path := saveWorkbook(t, [][]any{
		{"Team", "Country", "League", "Sports", "Founded"},
		{"Los Angeles Lakers", "USA", "NBA", "Basketball", 1947},
		{"Real Madrid", "Spain", "ACB"},
		{},
		{"Olympiacos", "Greece", "GBL", "Basketball", 1925},
	})

	ds, err := NewWorkbook(path, "").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(ds) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(ds))
	}

	cols, _ := ds.Columns()
	want := []string{"Team", "Country", "League", "Sports", "Founded"}
	if len(cols) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], cols[i])
		}
	}

	if v, _ := ds[0].Get("Founded"); v != int64(1947) {
		t.Errorf("expected int64(1947), got %v (%T)", v, v)
	}
	if got := ds[1].Text("Sports"); got != "" {
		t.Errorf("expected padded empty cell, got %q", got)
	}
	if got := ds[2].Text("Team"); got != "Olympiacos" {
		t.Errorf("expected Olympiacos, got %q", got)
	}
}

func TestWorkbook_UnnamedHeader(t *testing.T) {
	path := saveWorkbook(t, [][]any{
		{"Team", "", "League"},
		{"Lakers", "note", "NBA"},
	})

	ds, err := NewWorkbook(path, "").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got := ds[0].Text("Unnamed: 1"); got != "note" {
		t.Errorf("expected value under Unnamed: 1, got %q", got)
	}
}

func TestWorkbook_HeaderShapes(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]any
		wantCols []string
		want     map[string]string
	}{
		{
			name:     "duplicate names",
			rows:     [][]any{{"Team", "Country", "Team"}, {"Lakers", "USA", "LAL"}},
			wantCols: []string{"Team", "Country", "Team.1"},
			want:     map[string]string{"Team": "Lakers", "Team.1": "LAL"},
		},
		{
			name:     "duplicate colliding with existing suffix",
			rows:     [][]any{{"Team", "Team.1", "Team"}, {"a", "b", "c"}},
			wantCols: []string{"Team", "Team.1", "Team.2"},
			want:     map[string]string{"Team": "a", "Team.1": "b", "Team.2": "c"},
		},
		{
			name:     "data past the header",
			rows:     [][]any{{"Team", "Country"}, {"Lakers", "USA", "extra"}, {"Celtics"}},
			wantCols: []string{"Team", "Country", "Unnamed: 2"},
			want:     map[string]string{"Team": "Lakers", "Unnamed: 2": "extra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewWorkbook(saveWorkbook(t, tt.rows), "").Load(context.Background())
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}

			cols, _ := ds.Columns()
			if len(cols) != len(tt.wantCols) {
				t.Fatalf("expected columns %v, got %v", tt.wantCols, cols)
			}
			for i := range tt.wantCols {
				if cols[i] != tt.wantCols[i] {
					t.Errorf("column %d: expected %q, got %q", i, tt.wantCols[i], cols[i])
				}
			}
			for col, want := range tt.want {
				if got := ds[0].Text(col); got != want {
					t.Errorf("%s: expected %q, got %q", col, want, got)
				}
			}
			for _, rec := range ds[1:] {
				if len(rec.Keys()) != len(tt.wantCols) {
					t.Errorf("short row has keys %v, want %d columns", rec.Keys(), len(tt.wantCols))
				}
			}
		})
	}
}

func TestWorkbook_NamedSheet(t *testing.T) {
	f := writeWorkbook(t, [][]any{{"Team"}, {"Ignored"}})
	if _, err := f.NewSheet("Teams"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	row := []any{"Team"}
	f.SetSheetRow("Teams", "A1", &row)
	row = []any{"Celtics"}
	f.SetSheetRow("Teams", "A2", &row)

	path := filepath.Join(t.TempDir(), "teams.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f.Close()

	ds, err := NewWorkbook(path, "Teams").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(ds) != 1 || ds[0].Text("Team") != "Celtics" {
		t.Errorf("unexpected dataset %v", ds)
	}

	if _, err := NewWorkbook(path, "Missing").Load(context.Background()); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestWorkbook_MissingFile(t *testing.T) {
	_, err := NewWorkbook(filepath.Join(t.TempDir(), "none.xlsx"), "").Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected *SourceError, got %T", err)
	}
	if srcErr.Op != "open" {
		t.Errorf("expected op open, got %q", srcErr.Op)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestFromReader(t *testing.T) {
	f := writeWorkbook(t, [][]any{
		{"Team", "Country"},
		{"Fenerbahçe", "Turkey"},
	})
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	ds, err := FromReader(bytes.NewReader(buf.Bytes()), "")
	if err != nil {
		t.Fatalf("FromReader() failed: %v", err)
	}
	if len(ds) != 1 || ds[0].Text("Country") != "Turkey" {
		t.Errorf("unexpected dataset %v", ds)
	}
}

func TestFromReader_NotAWorkbook(t *testing.T) {
	if _, err := FromReader(bytes.NewReader([]byte("Team,Country\n")), ""); err == nil {
		t.Error("expected error for non-workbook input")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"76ers", "76ers"},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"", ""},
	}

	for _, tt := range tests {
		if result := parseValue(tt.input); result != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), expected %v (%T)", tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Basketball Sources Links.xlsx", true},
		{"legacy.XLS", true},
		{"teams.csv", false},
		{"xlsx", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := AllowedFile(tt.name); got != tt.want {
			t.Errorf("AllowedFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStatic(t *testing.T) {
	data := dataset.Dataset{dataset.NewRecord(dataset.F("Team", "Lakers"))}
	s := &Static{Data: data}

	ds, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	ds[0].Set("Team", "Changed")
	if data[0].Text("Team") != "Lakers" {
		t.Error("Load() must return a copy")
	}

	s.Err = errors.New("offline")
	if _, err := s.Load(context.Background()); !errors.Is(err, s.Err) {
		t.Errorf("expected configured error, got %v", err)
	}
}
