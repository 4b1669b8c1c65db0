package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BIGSHOL/ijw-Calander-sub010/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// assignment engine.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	engineRunDuration prometheus.Observer
	engineRunTotal    prometheus.Counter
	engineAssigned    prometheus.Gauge
	engineUnassigned  prometheus.Gauge
	engineConflicts   prometheus.Gauge
	cacheLatency      prometheus.Observer
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	dbQueryDuration   *prometheus.HistogramVec
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

	engineRunDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roomplan_engine_run_seconds",
		Help:    "Duration of room assignment engine runs",
		Buckets: prometheus.DefBuckets,
	})

	engineRunTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roomplan_engine_runs_total",
		Help: "Total number of engine runs",
	})

	engineAssigned := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roomplan_sessions_assigned",
		Help: "Sessions assigned a room in the most recent engine run",
	})

	engineUnassigned := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roomplan_sessions_unassigned",
		Help: "Sessions left without a room in the most recent engine run",
	})

	engineConflicts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roomplan_conflicts",
		Help: "Conflicts detected in the most recent engine run",
	})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
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

	registry.MustRegister(requestDuration, requestTotal, engineRunDuration, engineRunTotal,
		engineAssigned, engineUnassigned, engineConflicts, cacheLatency, cacheHits, cacheMisses,
		dbQueryDuration, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		engineRunDuration: engineRunDuration,
		engineRunTotal:    engineRunTotal,
		engineAssigned:    engineAssigned,
		engineUnassigned:  engineUnassigned,
		engineConflicts:   engineConflicts,
		cacheLatency:      cacheLatency,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveEngineRun records one scheduling run.
func (m *MetricsService) ObserveEngineRun(duration time.Duration, stats models.AssignmentStats) {
	if m == nil {
		return
	}
	m.engineRunDuration.Observe(duration.Seconds())
	m.engineRunTotal.Inc()
	m.engineAssigned.Set(float64(stats.Assigned))
	m.engineUnassigned.Set(float64(stats.Unassigned))
	m.engineConflicts.Set(float64(stats.Conflicts))
}

// RecordCacheOperation records cache hit/miss metrics.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}
