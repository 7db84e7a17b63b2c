// Package source loads team tables from workbooks.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"courtmap/dashboard/pkg/dataset"
)

// Source loads the current team table.
type Source interface {
	// Name identifies the source in logs, snapshots and health output.
	Name() string
	Load(ctx context.Context) (dataset.Dataset, error)
}

// AllowedExtensions lists the workbook extensions accepted for upload.
var AllowedExtensions = []string{"xlsx", "xls"}

// AllowedFile reports whether filename has an accepted workbook extension.
func AllowedFile(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// SourceError describes a failed load.
type SourceError struct {
	Source string // Source name
	Op     string // Operation that failed ("open", "read")
	Cause  error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %s failed: %v", e.Source, e.Op, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Static serves a fixed dataset. It is used in tests and as a seed.
type Static struct {
	SourceName string
	Data       dataset.Dataset
	Err        error
}

// Name returns the configured name.
func (s *Static) Name() string {
	if s.SourceName == "" {
		return "static"
	}
	return s.SourceName
}

// Load returns a copy of the configured dataset or the configured error.
func (s *Static) Load(ctx context.Context) (dataset.Dataset, error) {
	if s.Err != nil {
		return nil, &SourceError{Source: s.Name(), Op: "read", Cause: s.Err}
	}
	out := make(dataset.Dataset, len(s.Data))
	for i, r := range s.Data {
		out[i] = r.Clone()
	}
	return out, nil
}
