package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestNew_RejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestMetrics_Recorder(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveResolution(entitlement.FeatureVote, entitlement.StatusPrompt)
	m.ObserveResolution(entitlement.FeatureVote, entitlement.StatusPrompt)
	m.IncStoreFallback("policy")
	m.IncFailClosed(entitlement.FeatureViewSource)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues("vote", "PROMPT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeFallbacks.WithLabelValues("policy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failClosed.WithLabelValues("view_source")))
}

func TestMetrics_Handler(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveRequest(http.MethodGet, "/entitlements/:feature", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `atelier_http_requests_total{method="GET",path="/entitlements/:feature",status="200"} 1`))
	assert.Contains(t, text, "atelier_http_request_duration_seconds_bucket")
}
