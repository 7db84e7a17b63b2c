package metrics

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"courtmap/dashboard/pkg/config"
	"courtmap/dashboard/pkg/export"
	"courtmap/dashboard/pkg/teams"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Compile-time checks that the collector can be handed to the export
// service and the team catalog.
var (
	_ export.Recorder = (*Collector)(nil)
	_ teams.Recorder  = (*Collector)(nil)
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:                true,
		Namespace:              "test",
		Subsystem:              "metrics",
		RequestDurationBuckets: []float64{0.01, 0.1, 1.0},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, config.DefaultMetricsNamespace)
	}
	if cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("Subsystem = %q, want %q", cfg.Subsystem, config.DefaultMetricsSubsystem)
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		t.Error("RequestDurationBuckets not defaulted")
	}

	// The default registry carries runtime collectors.
	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "go_goroutines" {
			found = true
		}
	}
	if !found {
		t.Error("expected go_goroutines in default registry")
	}
}

func TestCollector_RecordExport(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	tests := []struct {
		name   string
		format string
		status string
		rows   int
		size   int
	}{
		{name: "csv success", format: "csv", status: StatusSuccess, rows: 2, size: 64},
		{name: "csv error", format: "csv", status: StatusError},
		{name: "json success", format: "json", status: StatusSuccess, rows: 5, size: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordExport(tt.format, tt.status, tt.rows, tt.size, 3*time.Millisecond)

			count := testutil.ToFloat64(collector.exportMetrics.exportsTotal.WithLabelValues(tt.format, tt.status))
			if count < 1 {
				t.Errorf("exports_total{%s,%s} = %v, want >= 1", tt.format, tt.status, count)
			}
		})
	}

	// Only the two successful exports observe sizes.
	if got := testutil.CollectAndCount(collector.exportMetrics.exportRows); got != 2 {
		t.Errorf("export_rows series = %d, want 2", got)
	}
}

func TestCollector_RecordRefresh(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	collector.now = func() time.Time { return fixed }

	collector.RecordRefresh("local", StatusSuccess, 42, 20*time.Millisecond)

	if got := testutil.ToFloat64(collector.dataMetrics.refreshesTotal.WithLabelValues("local", StatusSuccess)); got != 1 {
		t.Errorf("refreshes_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.dataMetrics.teams); got != 42 {
		t.Errorf("teams_loaded = %v, want 42", got)
	}
	if got := testutil.ToFloat64(collector.dataMetrics.lastRefresh); got != float64(fixed.Unix()) {
		t.Errorf("last refresh = %v, want %v", got, fixed.Unix())
	}

	// A failed refresh leaves the gauges untouched.
	collector.RecordRefresh("local", StatusError, 0, time.Millisecond)
	if got := testutil.ToFloat64(collector.dataMetrics.teams); got != 42 {
		t.Errorf("teams_loaded after error = %v, want 42", got)
	}

	collector.RecordRefresh("local", StatusFallback, 40, 0)
	if got := testutil.ToFloat64(collector.dataMetrics.teams); got != 40 {
		t.Errorf("teams_loaded after fallback = %v, want 40", got)
	}
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordHTTPRequest("GET", "/api/teams", 200, 5*time.Millisecond, 1024)
	collector.RecordHTTPRequest("GET", "/api/teams", 200, 5*time.Millisecond, 0)
	collector.RecordHTTPRequest("GET", "/team/{name}", 404, time.Millisecond, 20)

	if got := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("GET", "/api/teams", "200")); got != 2 {
		t.Errorf("requests_total{/api/teams,200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("GET", "/team/{name}", "404")); got != 1 {
		t.Errorf("requests_total{/team/{name},404} = %v, want 1", got)
	}
}

func TestCollector_RouteCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.cardinalityLimiter = NewCardinalityLimiter(2)

	collector.RecordHTTPRequest("GET", "/a", 404, 0, 0)
	collector.RecordHTTPRequest("GET", "/b", 404, 0, 0)
	collector.RecordHTTPRequest("GET", "/c", 404, 0, 0)
	collector.RecordHTTPRequest("GET", "/d", 404, 0, 0)

	if got := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("GET", OtherRoute, "404")); got != 2 {
		t.Errorf("requests_total{other} = %v, want 2", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordExport("csv", StatusSuccess, 1, 10, time.Millisecond)
	collector.RecordRefresh("local", StatusSuccess, 1, time.Millisecond)
	collector.RecordHTTPRequest("GET", "/", 200, time.Millisecond, 10)

	if got := testutil.CollectAndCount(collector.exportMetrics.exportsTotal); got != 0 {
		t.Errorf("exports_total series = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(collector.dataMetrics.refreshesTotal); got != 0 {
		t.Errorf("refreshes_total series = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(collector.requestMetrics.requestsTotal); got != 0 {
		t.Errorf("requests_total series = %d, want 0", got)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	limiter := NewCardinalityLimiter(3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow(fmt.Sprintf("label-%d", i)) {
			t.Errorf("Allow(label-%d) = false, want true", i)
		}
	}
	if limiter.Allow("label-3") {
		t.Error("Allow() past the limit should be false")
	}
	if !limiter.Allow("label-0") {
		t.Error("Allow() for a known label set should be true")
	}
	if limiter.Count() != 3 {
		t.Errorf("Count() = %d, want 3", limiter.Count())
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordExport("csv", StatusSuccess, 2, 40, time.Millisecond)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `test_metrics_exports_total{format="csv",status="success"} 1`) {
		t.Errorf("exports counter missing from scrape:\n%s", body)
	}
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.RecordExport("csv", StatusSuccess, 1, 10, time.Millisecond)
			collector.RecordHTTPRequest("GET", "/api/teams/export.csv", 200, time.Millisecond, 10)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(collector.exportMetrics.exportsTotal.WithLabelValues("csv", StatusSuccess)); got != 50 {
		t.Errorf("exports_total = %v, want 50", got)
	}
}
