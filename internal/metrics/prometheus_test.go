package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder("test-counts")

	r.RecordExtraction("csv", 3, 120, NewTimer().Duration())
	r.RecordExtractionError("xlsx", "PARSE_ERROR")
	r.RecordProjection("pie", "ok", 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(UploadsTotal.WithLabelValues("test-counts", "csv", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(RecordsExtracted.WithLabelValues("test-counts")))
	assert.Equal(t, 120.0, testutil.ToFloat64(UploadBytes.WithLabelValues("test-counts")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ExtractionErrors.WithLabelValues("test-counts", "PARSE_ERROR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ProjectionsTotal.WithLabelValues("test-counts", "pie", "ok")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordExtraction("csv", 1, 1, 0)
		r.RecordExtractionError("csv", "FILE_READ")
		r.RecordProjection("bar", "ok", 1)
	})
}
