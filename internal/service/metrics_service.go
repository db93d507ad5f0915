package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/funeral-admin-api/internal/dto"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	viewStateLatency  prometheus.Observer
	viewStateHitRatio prometheus.Gauge
	viewStateLookups  *prometheus.CounterVec
	bulkOutcomes      *prometheus.CounterVec
	auditDropped      prometheus.Counter
	dbQueryDuration   *prometheus.HistogramVec

	viewStateHitCount    uint64
	viewStateMissCount   uint64
	auditDropCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	dbQueryCount         uint64
	dbQueryDurationTotal uint64
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

	viewStateLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "view_state_lookup_seconds",
		Help:    "Latency for view state lookups",
		Buckets: prometheus.DefBuckets,
	})

	viewStateHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "view_state_hit_ratio",
		Help: "Ratio of stored view state hits to total lookups",
	})

	viewStateLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "view_state_lookups_total",
		Help: "View state lookups by result",
	}, []string{"result"})

	bulkOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bulk_items_total",
		Help: "Bulk action items by tab, action and outcome",
	}, []string{"tab", "action", "outcome"})

	auditDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_entries_dropped_total",
		Help: "Audit entries that could not be queued",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, viewStateLatency, viewStateHitRatio, viewStateLookups, bulkOutcomes, auditDropped, dbQueryDuration, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		viewStateLatency:  viewStateLatency,
		viewStateHitRatio: viewStateHitRatio,
		viewStateLookups:  viewStateLookups,
		bulkOutcomes:      bulkOutcomes,
		auditDropped:      auditDropped,
		dbQueryDuration:   dbQueryDuration,
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

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordViewStateLookup records whether a stored view state was found and updates the hit ratio.
func (m *MetricsService) RecordViewStateLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.viewStateLatency.Observe(duration.Seconds())
	if hit {
		m.viewStateLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.viewStateHitCount, 1)
	} else {
		m.viewStateLookups.WithLabelValues("miss").Inc()
		atomic.AddUint64(&m.viewStateMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.viewStateHitCount)
	misses := atomic.LoadUint64(&m.viewStateMissCount)
	if total := hits + misses; total > 0 {
		m.viewStateHitRatio.Set(float64(hits) / float64(total))
	}
}

// RecordBulkOutcome counts bulk action items per outcome.
func (m *MetricsService) RecordBulkOutcome(tab, action string, result *dto.BulkResult) {
	if m == nil || result == nil {
		return
	}
	m.bulkOutcomes.WithLabelValues(tab, action, string(dto.BulkItemSucceeded)).Add(float64(result.Succeeded))
	m.bulkOutcomes.WithLabelValues(tab, action, string(dto.BulkItemFailed)).Add(float64(result.Failed))
	m.bulkOutcomes.WithLabelValues(tab, action, string(dto.BulkItemSkipped)).Add(float64(result.Skipped))
}

// RecordAuditDropped counts an audit entry that never reached the queue.
func (m *MetricsService) RecordAuditDropped() {
	if m == nil {
		return
	}
	m.auditDropped.Inc()
	atomic.AddUint64(&m.auditDropCount, 1)
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.dbQueryCount, 1)
	atomic.AddUint64(&m.dbQueryDurationTotal, uint64(duration.Nanoseconds()))
}

// Snapshot returns aggregated metrics for the system metrics endpoint.
func (m *MetricsService) Snapshot() dto.SystemMetrics {
	if m == nil {
		return dto.SystemMetrics{GeneratedAt: time.Now().UTC()}
	}
	hits := atomic.LoadUint64(&m.viewStateHitCount)
	misses := atomic.LoadUint64(&m.viewStateMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	dbCount := atomic.LoadUint64(&m.dbQueryCount)
	dbDuration := atomic.LoadUint64(&m.dbQueryDurationTotal)

	var hitRatio float64
	if total := hits + misses; total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgDBMs float64
	if dbCount > 0 {
		avgDBMs = float64(dbDuration) / float64(dbCount) / float64(time.Millisecond)
	}

	return dto.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		ViewStateHitRatio:        hitRatio,
		AuditDropped:             atomic.LoadUint64(&m.auditDropCount),
		DBQueryCount:             dbCount,
		AverageDBQueryDurationMs: avgDBMs,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
