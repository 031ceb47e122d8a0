package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/wellfinder/internal/usecase/merge"
)

const namespace = "wellfinder"

// Pipeline Prometheus metrics.
var (
	RowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Total rows read from source tables",
		},
		[]string{"source"}, // "coordinates" / "details"
	)

	RowsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows that did not produce a well record",
		},
		[]string{"reason"}, // "parse" / "county" / "excess"
	)

	WellsMerged = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wells_merged",
			Help:      "Wells in the current merged collection",
		},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Nearest-neighbor queries answered",
		},
		[]string{"surface"}, // "pipeline" / "http"
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Nearest-neighbor query duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"surface"},
	)
)

var registerOnce sync.Once

// Register registers pipeline and HTTP metrics with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequestDuration)
		prometheus.MustRegister(httpRequestsTotal)
		prometheus.MustRegister(RowsTotal)
		prometheus.MustRegister(RowsDroppedTotal)
		prometheus.MustRegister(WellsMerged)
		prometheus.MustRegister(QueriesTotal)
		prometheus.MustRegister(QueryDuration)
	})
}

// ObserveMerge records the outcome of one merge run.
func ObserveMerge(coords, details int, stats merge.Stats) {
	RowsTotal.WithLabelValues("coordinates").Add(float64(coords))
	RowsTotal.WithLabelValues("details").Add(float64(details))
	RowsDroppedTotal.WithLabelValues("parse").Add(float64(stats.DroppedParse))
	RowsDroppedTotal.WithLabelValues("county").Add(float64(stats.DroppedCounty))
	RowsDroppedTotal.WithLabelValues("excess").Add(float64(stats.IgnoredExcess))
	WellsMerged.Set(float64(stats.Kept))
}
