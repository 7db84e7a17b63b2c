package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"courtmap/dashboard/pkg/dataset"
)

func TestJSONExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), sampleTeams()[:1], &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	want := `[{"Team":"Los Angeles Lakers","Country":"USA","League":"NBA","Sports":"Basketball"}]`
	if buf.String() != want {
		t.Errorf("Export() = %s, want %s", buf.String(), want)
	}
}

func TestJSONExporter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	ds := dataset.Dataset{dataset.NewRecord(dataset.F("n", 1))}
	if err := NewJSONExporter(true).Export(context.Background(), ds, &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	if !strings.Contains(buf.String(), "\n  {") {
		t.Errorf("expected indented output, got %q", buf.String())
	}
}

func TestJSONExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(context.Background(), nil, &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if buf.String() != "[]" {
		t.Errorf("expected [], got %q", buf.String())
	}
}
