package metrics

import (
	"sync"
	"time"

	"courtmap/dashboard/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Status label values shared by export and refresh metrics.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusFallback = "fallback"
)

// OtherRoute replaces route labels once the cardinality limit is reached.
const OtherRoute = "other"

// Collector owns the dashboard's Prometheus registry and records HTTP,
// export and refresh metrics. It satisfies both export.Recorder and
// teams.Recorder.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics *RequestMetrics
	exportMetrics  *ExportMetrics
	dataMetrics    *DataMetrics

	// Route labels come from the router, but unmatched paths are raw
	// request paths and must not grow the label set without bound.
	cardinalityLimiter *CardinalityLimiter

	now func() time.Time
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry carrying the
// Go runtime and process collectors is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "courtmap",
//		Subsystem: "dashboard",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = append([]float64(nil), config.DefaultRequestDurationBuckets...)
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		requestMetrics:     NewRequestMetrics(cfg, registry),
		exportMetrics:      NewExportMetrics(cfg, registry),
		dataMetrics:        NewDataMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(256),
		now:                time.Now,
	}
}

// RecordHTTPRequest records a completed HTTP request. route should be the
// router pattern ("/team/{name}"), not the raw path.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration, sizeBytes int) {
	if !c.config.Enabled {
		return
	}

	if !c.cardinalityLimiter.Allow(method + " " + route) {
		route = OtherRoute
	}

	c.requestMetrics.RecordRequest(method, route, status, duration, sizeBytes)
}

// RecordExport records one export attempt.
//
// Parameters:
//   - format: "csv" or "json"
//   - status: "success" or "error"
//   - rows: number of records exported
//   - size: encoded size in bytes
//   - duration: time spent encoding and delivering
func (c *Collector) RecordExport(format, status string, rows, size int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.exportMetrics.RecordExport(format, status, rows, size, duration)
}

// RecordRefresh records one team data refresh.
//
// Parameters:
//   - source: data source name (e.g., "local", "upload")
//   - status: "success", "error" or "fallback"
//   - rows: number of teams loaded
//   - duration: refresh duration
func (c *Collector) RecordRefresh(source, status string, rows int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.dataMetrics.RecordRefresh(source, status, rows, duration, c.now())
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
