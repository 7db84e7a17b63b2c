package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"courtmap/dashboard/pkg/teams/source"
)

const (
	msgUploadsManaged = "Database updates are managed through cloud provider. Contact administrator."
	msgNoFilePart     = "No file part"
	msgNoSelectedFile = "No selected file"
	msgInvalidType    = "Invalid file type. Please upload an Excel file (.xlsx or .xls)"
	msgTooLarge       = "Uploaded file is too large"
)

// handleUpload replaces the workbook with the uploaded "file" part and
// reloads the catalog. It only works for the local provider. The upload is
// parsed before anything is written, so a broken workbook never replaces
// a good one.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.config.Data.Provider != "local" || s.deps.WorkbookPath == "" {
		writeError(w, http.StatusForbidden, msgUploadsManaged)
		return
	}

	if limit := s.config.Server.MaxUploadBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			writeError(w, http.StatusBadRequest, msgNoFilePart)
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, msgNoSelectedFile)
		return
	}
	if !source.AllowedFile(header.Filename) {
		writeError(w, http.StatusBadRequest, msgInvalidType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}
	ds, err := source.FromReader(bytes.NewReader(data), s.deps.Sheet)
	if err != nil {
		s.logger.WarnContext(r.Context(), "rejected workbook upload", "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusBadRequest, failureResponse{Error: err.Error()})
		return
	}

	s.uploadMu.Lock()
	err = replaceFile(s.deps.WorkbookPath, data)
	s.uploadMu.Unlock()
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to store workbook", "path", s.deps.WorkbookPath, "error", err)
		writeJSON(w, http.StatusInternalServerError, failureResponse{Error: "failed to store workbook"})
		return
	}

	s.logger.InfoContext(r.Context(), "workbook replaced",
		"filename", header.Filename,
		"path", s.deps.WorkbookPath,
		"rows", len(ds),
	)

	res, err := s.deps.Catalog.Refresh(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, failureResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Success:    true,
		Message:    "Database updated successfully",
		Timestamp:  res.LoadedAt,
		TeamsCount: res.Teams,
		Origin:     res.Origin,
	})
}

// replaceFile writes data next to path and renames it into place, so
// readers never see a half-written workbook.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
