// Package clipboard copies text to a clipboard.
//
// Writers are injected so callers can be tested without a desktop session.
// Copy makes a single attempt and reports the outcome as a boolean.
package clipboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no system clipboard is available.
var ErrUnsupported = errors.New("clipboard not supported in this environment")

// ClipboardWriter makes text available through a clipboard.
type ClipboardWriter interface {
	WriteText(ctx context.Context, text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// WriteText places text on the system clipboard.
func (System) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard. The zero value is ready to use.
type Memory struct {
	mu   sync.Mutex
	text string
	// Err, when set, is returned by WriteText instead of storing the text.
	Err error
}

// WriteText stores text.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

// Text returns the last stored text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Copy writes text through w and reports whether it succeeded.
// Failures are logged and not retried.
func Copy(ctx context.Context, w ClipboardWriter, text string) bool {
	logger := slog.Default().With("component", "clipboard")

	if w == nil {
		logger.WarnContext(ctx, "no clipboard writer configured")
		return false
	}
	if err := w.WriteText(ctx, text); err != nil {
		logger.WarnContext(ctx, "failed to copy to clipboard", "error", err)
		return false
	}

	logger.DebugContext(ctx, "copied to clipboard", "bytes", len(text))
	return true
}
