// Package metrics provides Prometheus metrics for uploads and projections
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upload metrics
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prodstats_uploads_total",
			Help: "Total number of upload extraction attempts",
		},
		[]string{"source", "format", "status"},
	)

	UploadBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prodstats_upload_bytes_total",
			Help: "Total bytes read from uploads",
		},
		[]string{"source"},
	)

	RecordsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prodstats_records_extracted_total",
			Help: "Total number of product records extracted",
		},
		[]string{"source"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prodstats_extraction_duration_seconds",
			Help:    "Time taken to decode and validate an upload",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"source"},
	)

	// Error metrics
	ExtractionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prodstats_extraction_errors_total",
			Help: "Total number of failed extractions by error code",
		},
		[]string{"source", "code"},
	)

	// Projection metrics
	ProjectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prodstats_projections_total",
			Help: "Total number of chart projections by chart type and outcome",
		},
		[]string{"source", "chart_type", "outcome"},
	)

	ProjectedPoints = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prodstats_projected_points",
			Help:    "Number of points in a projection",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"source", "chart_type"},
	)
)

// Recorder records metrics on behalf of one entry point ("web", "cli").
// A nil Recorder records nothing.
type Recorder struct {
	source string
}

// NewRecorder creates a metrics recorder for source
func NewRecorder(source string) *Recorder {
	return &Recorder{source: source}
}

// RecordExtraction records a successful extraction
func (m *Recorder) RecordExtraction(format string, records int, bytes int64, duration time.Duration) {
	if m == nil {
		return
	}
	UploadsTotal.WithLabelValues(m.source, format, "ok").Inc()
	UploadBytes.WithLabelValues(m.source).Add(float64(bytes))
	RecordsExtracted.WithLabelValues(m.source).Add(float64(records))
	ExtractionDuration.WithLabelValues(m.source).Observe(duration.Seconds())
}

// RecordExtractionError records a failed extraction
func (m *Recorder) RecordExtractionError(format, code string) {
	if m == nil {
		return
	}
	UploadsTotal.WithLabelValues(m.source, format, "error").Inc()
	ExtractionErrors.WithLabelValues(m.source, code).Inc()
}

// RecordProjection records a projection outcome. outcome is "ok" or the
// empty-result reason.
func (m *Recorder) RecordProjection(chartType, outcome string, points int) {
	if m == nil {
		return
	}
	ProjectionsTotal.WithLabelValues(m.source, chartType, outcome).Inc()
	ProjectedPoints.WithLabelValues(m.source, chartType).Observe(float64(points))
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
