package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
	resolvedSlots      *prometheus.CounterVec
	reportRows         *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	resolutionDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "availability_resolution_duration_seconds",
		Help:    "Duration of availability resolutions",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	resolvedSlots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_resolved_slots_total",
		Help: "Resolved slots by verdict",
	}, []string{"status"})

	reportRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "daily_resources_rows_total",
		Help: "Daily resources report rows by status label",
	}, []string{"status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, resolutionDuration, resolvedSlots, reportRows, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		resolutionDuration: resolutionDuration,
		resolvedSlots:      resolvedSlots,
		reportRows:         reportRows,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveResolution records the duration of a resolver or reporter call.
func (m *MetricsService) ObserveResolution(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.resolutionDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// CountSlots adds resolved slot verdicts to the per-status counter.
func (m *MetricsService) CountSlots(status string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.resolvedSlots.WithLabelValues(status).Add(float64(n))
}

// CountReportRow records one daily report row.
func (m *MetricsService) CountReportRow(status string) {
	if m == nil {
		return
	}
	m.reportRows.WithLabelValues(status).Inc()
}
