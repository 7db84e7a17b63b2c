package metrics

import (
	"time"

	"courtmap/dashboard/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics tracks CSV and JSON exports.
type ExportMetrics struct {
	exportsTotal *prometheus.CounterVec

	exportDuration *prometheus.HistogramVec

	exportRows *prometheus.HistogramVec

	exportBytes *prometheus.HistogramVec
}

// NewExportMetrics creates and registers export metrics with the provided registry.
func NewExportMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ExportMetrics {
	em := &ExportMetrics{
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "exports_total",
				Help:      "Total number of exports by format and status",
			},
			[]string{"format", "status"},
		),

		exportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_duration_seconds",
				Help:      "Time spent encoding and delivering an export",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"format"},
		),

		exportRows: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_rows",
				Help:      "Number of records per successful export",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16K rows
			},
			[]string{"format"},
		),

		exportBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_size_bytes",
				Help:      "Encoded size of successful exports in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"format"},
		),
	}

	registry.MustRegister(
		em.exportsTotal,
		em.exportDuration,
		em.exportRows,
		em.exportBytes,
	)

	return em
}

// RecordExport records one export attempt. Sizes are only observed for
// successful exports.
func (em *ExportMetrics) RecordExport(format, status string, rows, sizeBytes int, duration time.Duration) {
	em.exportsTotal.WithLabelValues(format, status).Inc()
	em.exportDuration.WithLabelValues(format).Observe(duration.Seconds())

	if status != StatusSuccess {
		return
	}
	em.exportRows.WithLabelValues(format).Observe(float64(rows))
	em.exportBytes.WithLabelValues(format).Observe(float64(sizeBytes))
}
