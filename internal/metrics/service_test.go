package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCountsAndExposes(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncSheetReads()
	svc.IncSheetReads()
	svc.IncMediaUploads()
	svc.ObserveSheetReadDuration(0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.SheetReads))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.MediaUploads))
	assert.Equal(t, 0.0, testutil.ToFloat64(svc.MediaDeletes))

	rr := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	NewMetricsHandler(reg).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "dna_dashboard_sheet_reads_total 2")
	assert.Contains(t, rr.Body.String(), "dna_dashboard_sheet_read_duration_seconds_count 1")
}
