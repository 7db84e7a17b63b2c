package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// FileDownloader saves the blob behind an object URL under a filename.
type FileDownloader interface {
	Download(ctx context.Context, u ObjectURL, filename string) error
}

// TriggerDownload packages text as a CSV blob and hands it to d under
// filename. The object URL created for the blob is revoked before
// TriggerDownload returns, whether or not the download succeeded.
func TriggerDownload(ctx context.Context, urls *ObjectURLs, d FileDownloader, text, filename string) error {
	return Download(ctx, urls, d, NewBlob(text, CSVMediaType), filename)
}

// Download hands blob b to d under filename through a transient object URL.
func Download(ctx context.Context, urls *ObjectURLs, d FileDownloader, b *Blob, filename string) error {
	u := urls.Create(b)
	defer urls.Revoke(u)

	if err := d.Download(ctx, u, filename); err != nil {
		return &DownloadError{Filename: filename, Cause: err}
	}
	return nil
}

// ResponseDownloader writes downloads as HTTP attachment responses.
type ResponseDownloader struct {
	W http.ResponseWriter
}

// NewResponseDownloader creates a downloader writing to w.
func NewResponseDownloader(w http.ResponseWriter) *ResponseDownloader {
	return &ResponseDownloader{W: w}
}

// Download writes the blob as the response body with Content-Type and
// Content-Disposition headers set.
func (d *ResponseDownloader) Download(ctx context.Context, u ObjectURL, filename string) error {
	b, err := u.Resolve()
	if err != nil {
		return err
	}

	h := d.W.Header()
	h.Set("Content-Type", b.MediaType())
	h.Set("Content-Disposition", ContentDisposition(filename))
	h.Set("Content-Length", strconv.Itoa(b.Size()))
	h.Set("Cache-Control", "no-store")
	d.W.WriteHeader(http.StatusOK)

	_, err = io.Copy(d.W, b.Reader())
	return err
}

// ContentDisposition returns an attachment disposition for filename.
func ContentDisposition(filename string) string {
	v := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if v == "" {
		return "attachment"
	}
	return v
}

// DirDownloader saves downloads as files inside a directory.
type DirDownloader struct {
	Dir string
}

// NewDirDownloader creates a downloader saving into dir.
func NewDirDownloader(dir string) *DirDownloader {
	return &DirDownloader{Dir: dir}
}

// Download writes the blob to Dir/<base of filename>. Only the base name of
// filename is used so downloads cannot escape Dir.
func (d *DirDownloader) Download(ctx context.Context, u ObjectURL, filename string) error {
	b, err := u.Resolve()
	if err != nil {
		return err
	}

	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid filename %q", filename)
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	if _, err := io.Copy(f, b.Reader()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}
