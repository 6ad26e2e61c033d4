package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/availability", http.StatusOK, 20*time.Millisecond)
	m.ObserveResolution("resolve_week", time.Millisecond)
	m.CountSlots("AVAILABLE", 28)
	m.CountReportRow("Neutral")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, name := range []string{
		"http_requests_total",
		"availability_resolution_duration_seconds",
		`availability_resolved_slots_total{status="AVAILABLE"} 28`,
		`daily_resources_rows_total{status="Neutral"} 1`,
		"goroutines_total",
	} {
		assert.True(t, strings.Contains(body, name), name)
	}
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveResolution("x", time.Millisecond)
	m.CountSlots("AVAILABLE", 1)
	m.CountReportRow("Neutral")
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
