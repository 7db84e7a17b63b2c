package export

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"courtmap/dashboard/pkg/dataset"
)

// Recorder receives export outcomes. The metrics collector implements it.
type Recorder interface {
	RecordExport(format, status string, rows, size int, duration time.Duration)
}

// Service encodes datasets and hands the result to a downloader.
type Service struct {
	csv    *CSVExporter
	json   *JSONExporter
	urls   *ObjectURLs
	rec    Recorder
	logger *slog.Logger
}

// NewService creates an export service. rec may be nil.
func NewService(urls *ObjectURLs, rec Recorder, prettyJSON bool) *Service {
	if urls == nil {
		urls = NewObjectURLs()
	}
	return &Service{
		csv:    NewCSVExporter(),
		json:   NewJSONExporter(prettyJSON),
		urls:   urls,
		rec:    rec,
		logger: slog.Default().With("component", "export"),
	}
}

// ObjectURLs returns the registry used for transient download references.
func (s *Service) ObjectURLs() *ObjectURLs {
	return s.urls
}

// ExportCSV encodes ds as CSV and downloads it as filename.
func (s *Service) ExportCSV(ctx context.Context, ds dataset.Dataset, filename string, d FileDownloader) error {
	start := time.Now()
	text, err := ToCSV(ds)
	if err != nil {
		s.finish(ctx, "csv", filename, len(ds), 0, start, err)
		return err
	}

	err = TriggerDownload(ctx, s.urls, d, text, filename)
	s.finish(ctx, "csv", filename, len(ds), len(text), start, err)
	return err
}

// ExportJSON encodes ds as a JSON array and downloads it as filename.
func (s *Service) ExportJSON(ctx context.Context, ds dataset.Dataset, filename string, d FileDownloader) error {
	start := time.Now()
	var buf bytes.Buffer
	if err := s.json.Export(ctx, ds, &buf); err != nil {
		s.finish(ctx, "json", filename, len(ds), 0, start, err)
		return err
	}

	err := Download(ctx, s.urls, d, NewBlob(buf.String(), JSONMediaType), filename)
	s.finish(ctx, "json", filename, len(ds), buf.Len(), start, err)
	return err
}

func (s *Service) finish(ctx context.Context, format, filename string, rows, size int, start time.Time, err error) {
	duration := time.Since(start)
	status := "success"
	if err != nil {
		status = "error"
	}

	if s.rec != nil {
		s.rec.RecordExport(format, status, rows, size, duration)
	}

	exportID := uuid.NewString()
	if err != nil {
		s.logger.ErrorContext(ctx, "export failed",
			"export_id", exportID,
			"format", format,
			"filename", filename,
			"rows", rows,
			"error", err,
		)
		return
	}

	s.logger.InfoContext(ctx, "export completed",
		"export_id", exportID,
		"format", format,
		"filename", filename,
		"rows", rows,
		"bytes", size,
		"duration_ms", duration.Milliseconds(),
	)
}
