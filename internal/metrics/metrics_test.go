package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBusinessEvent(t *testing.T) {
	m := New()

	m.RecordBusinessEvent("connect_with_code", "success")
	m.RecordBusinessEvent("connect_with_code", "success")
	m.RecordBusinessEvent("connect_with_code", "failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.businessEvents.WithLabelValues("connect_with_code", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.businessEvents.WithLabelValues("connect_with_code", "failure")))
}

func TestRecordBusinessEvent_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordBusinessEvent("signup", "success")
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, 0.01)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "http_requests_total"))
	assert.True(t, strings.Contains(body, "http_request_duration_seconds"))
}
