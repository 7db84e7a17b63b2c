package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"courtmap/dashboard/pkg/config"
	"courtmap/dashboard/pkg/telemetry/logging"
	"courtmap/dashboard/pkg/telemetry/metrics"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = logging.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("request ID missing from context")
			}
			if tt.incoming != "" && seen != tt.incoming {
				t.Errorf("request ID = %q, want %q", seen, tt.incoming)
			}
			if got := rec.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("response header = %q, want %q", got, seen)
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}
	prev := slog.Default()
	logger.SetDefault()
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := RequestIDMiddleware(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Team not found")
	})))

	req := httptest.NewRequest(http.MethodGet, "/team/Nobody", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", buf.String())
	}
	if entry["msg"] != "request completed" || entry["level"] != "WARN" {
		t.Errorf("entry = %v", entry)
	}
	if entry["status"] != float64(404) || entry["path"] != "/team/Nobody" {
		t.Errorf("status/path = %v/%v", entry["status"], entry["path"])
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if n := strings.Count(buf.String(), `"request_id"`); n != 1 {
		t.Errorf("request_id logged %d times, want 1", n)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("before write", func(t *testing.T) {
		h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Internal server error"}` {
			t.Errorf("body = %s", got)
		}
	})

	t.Run("after write", func(t *testing.T) {
		h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("partial"))
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK || rec.Body.String() != "partial" {
			t.Errorf("response = %d %q, want untouched", rec.Code, rec.Body.String())
		}
	})

	t.Run("abort handler", func(t *testing.T) {
		h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		defer func() {
			if recover() != http.ErrAbortHandler {
				t.Error("ErrAbortHandler should be re-panicked")
			}
		}()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestMetricsMiddleware_RoutePattern(t *testing.T) {
	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "mw",
	}, prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(collector))
	r.Use(RecoveryMiddleware)
	r.Get("/team/{name}", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	for _, path := range []string{"/team/a", "/team/b", "/panic"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var buf bytes.Buffer
	buf.WriteString(`
# HELP test_mw_http_requests_total Total number of HTTP requests handled
# TYPE test_mw_http_requests_total counter
test_mw_http_requests_total{method="GET",route="/panic",status="500"} 1
test_mw_http_requests_total{method="GET",route="/team/{name}",status="200"} 2
`)
	if err := testutil.GatherAndCompare(collector.Registry(), &buf, "test_mw_http_requests_total"); err != nil {
		t.Error(err)
	}
}

func TestResponseWriter_Reuse(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if newResponseWriter(rw) != rw {
		t.Error("wrapping a responseWriter should reuse it")
	}

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)
	if rw.statusCode != http.StatusTeapot || rec.Code != http.StatusTeapot {
		t.Errorf("status = %d/%d, want first WriteHeader to win", rw.statusCode, rec.Code)
	}
}
