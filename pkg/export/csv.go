package export

import (
	"context"
	"io"
	"strings"

	"courtmap/dashboard/pkg/dataset"
)

// CSVMediaType is the media type of CSV downloads.
const CSVMediaType = "text/csv;charset=utf-8"

// CSVExporter exports datasets to CSV.
//
// Columns come from the first record in key insertion order. Header names are
// written as-is while data fields are quoted when they contain a comma, a
// double quote or a newline. Rows end with "\n".
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ToCSV serializes ds into a complete CSV document.
// It fails with dataset.ErrEmptyDataset when ds has no records.
func ToCSV(ds dataset.Dataset) (string, error) {
	var sb strings.Builder
	if err := NewCSVExporter().Export(context.Background(), ds, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Export writes ds to w in CSV format.
func (e *CSVExporter) Export(ctx context.Context, ds dataset.Dataset, w io.Writer) error {
	headers, err := ds.Columns()
	if err != nil {
		return NewExportError("csv", 0, err)
	}

	// Header names are not escaped.
	if _, err := io.WriteString(w, strings.Join(headers, ",")+"\n"); err != nil {
		return NewExportError("csv", len(ds), err)
	}

	row := make([]string, len(headers))
	for _, record := range ds {
		for i, header := range headers {
			row[i] = EscapeField(record.Text(header))
		}
		if _, err := io.WriteString(w, strings.Join(row, ",")+"\n"); err != nil {
			return NewExportError("csv", len(ds), err)
		}
	}

	return nil
}

// EscapeField applies CSV quoting to a single data field. Values containing
// a comma, a double quote or a newline are wrapped in double quotes with
// internal quotes doubled; all other values are returned unchanged.
func EscapeField(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
