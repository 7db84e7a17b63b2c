package export

import (
	"errors"
	"fmt"
)

// ErrObjectURLNotFound is returned when an object URL was never created or
// has already been revoked.
var ErrObjectURLNotFound = errors.New("object URL not found")

// ExportError represents an error during dataset export.
type ExportError struct {
	Format      string // Export format ("json", "csv")
	RecordCount int    // Number of records being exported
	Cause       error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, record_count=%d]: %v", e.Format, e.RecordCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format string, recordCount int, cause error) *ExportError {
	return &ExportError{
		Format:      format,
		RecordCount: recordCount,
		Cause:       cause,
	}
}

// DownloadError represents a failure to hand a file to the downloader.
type DownloadError struct {
	Filename string
	Cause    error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	return fmt.Sprintf("download error [filename=%s]: %v", e.Filename, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *DownloadError) Unwrap() error {
	return e.Cause
}
