package metrics

import (
	"time"

	"courtmap/dashboard/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DataMetrics tracks team data refreshes and the size of the loaded catalog.
type DataMetrics struct {
	refreshesTotal *prometheus.CounterVec

	refreshDuration *prometheus.HistogramVec

	teams prometheus.Gauge

	lastRefresh prometheus.Gauge
}

// NewDataMetrics creates and registers data metrics with the provided registry.
func NewDataMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DataMetrics {
	dm := &DataMetrics{
		refreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "data_refreshes_total",
				Help:      "Total number of team data refreshes by source and status",
			},
			[]string{"source", "status"},
		),

		refreshDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "data_refresh_duration_seconds",
				Help:      "Duration of team data refreshes in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		teams: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "teams_loaded",
				Help:      "Number of teams currently loaded",
			},
		),

		lastRefresh: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "data_last_refresh_timestamp_seconds",
				Help:      "Unix time of the last refresh that loaded data",
			},
		),
	}

	registry.MustRegister(
		dm.refreshesTotal,
		dm.refreshDuration,
		dm.teams,
		dm.lastRefresh,
	)

	return dm
}

// RecordRefresh records one refresh attempt. Attempts that loaded data
// (directly or from a snapshot) also update the teams and timestamp gauges.
func (dm *DataMetrics) RecordRefresh(source, status string, rows int, duration time.Duration, at time.Time) {
	dm.refreshesTotal.WithLabelValues(source, status).Inc()
	dm.refreshDuration.WithLabelValues(source).Observe(duration.Seconds())

	if status == StatusError {
		return
	}
	dm.teams.Set(float64(rows))
	dm.lastRefresh.Set(float64(at.Unix()))
}
