package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"courtmap/dashboard/pkg/dataset"
)

// Workbook loads teams from an Excel workbook on disk.
type Workbook struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewWorkbook creates a workbook source. An empty sheet selects the first
// sheet of the workbook.
func NewWorkbook(path, sheet string) *Workbook {
	return &Workbook{
		path:   path,
		sheet:  sheet,
		logger: slog.Default().With("component", "source.workbook"),
	}
}

// Name returns "local".
func (w *Workbook) Name() string {
	return "local"
}

// Path returns the workbook file path.
func (w *Workbook) Path() string {
	return w.path
}

// Load reads the configured sheet.
func (w *Workbook) Load(ctx context.Context) (dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, &SourceError{Source: w.Name(), Op: "open", Cause: err}
	}
	defer f.Close()

	ds, err := readSheet(f, w.sheet)
	if err != nil {
		return nil, &SourceError{Source: w.Name(), Op: "read", Cause: err}
	}

	w.logger.DebugContext(ctx, "workbook loaded", "path", w.path, "rows", len(ds))
	return ds, nil
}

// FromReader parses a workbook from r, e.g. an uploaded file.
func FromReader(r io.Reader, sheet string) (dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &SourceError{Source: "upload", Op: "open", Cause: err}
	}
	defer f.Close()

	ds, err := readSheet(f, sheet)
	if err != nil {
		return nil, &SourceError{Source: "upload", Op: "read", Cause: err}
	}
	return ds, nil
}

// readSheet converts a sheet into records. Row 1 is the header, missing
// cells become "" and numeric cells are parsed. Rows with no data are
// skipped.
func readSheet(f *excelize.File, sheet string) (dataset.Dataset, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataset.Dataset{}, nil
	}

	headers := headerNames(rows)

	ds := make(dataset.Dataset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		fields := make([]dataset.Field, len(headers))
		for i, h := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fields[i] = dataset.F(h, parseValue(cell))
		}
		ds = append(ds, dataset.NewRecord(fields...))
	}

	return ds, nil
}

// headerNames names every column of the sheet, which is as wide as its
// widest row. Blank or missing header cells are named "Unnamed: <index>"
// and repeated names get a ".<k>" suffix, so no column shadows another.
func headerNames(rows [][]string) []string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	headers := make([]string, width)
	used := make(map[string]bool, width)
	for i := range headers {
		h := ""
		if i < len(rows[0]) {
			h = rows[0][i]
		}
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		for k, base := 1, h; used[h]; k++ {
			h = base + "." + strconv.Itoa(k)
		}
		used[h] = true
		headers[i] = h
	}
	return headers
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// parseValue returns int64 for integers, float64 for decimals, or s.
func parseValue(s string) any {
	if s == "" {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
