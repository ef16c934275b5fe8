// Package metrics exposes Prometheus instrumentation for the cache and
// analytics subsystem and a /metrics handler served on a side port.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_hits_total",
			Help: "Analytics cache hits",
		},
		[]string{"metric"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_misses_total",
			Help: "Analytics cache misses",
		},
		[]string{"metric"},
	)
	ComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Time spent deriving one analytics metric, cache hits included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"metric"},
	)
	RefreshCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_refresh_cycles_total",
			Help: "Background refresh cycles",
		},
		[]string{"result"}, // ok|error
	)
	ActiveRefreshers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "analytics_active_refreshers",
			Help: "Refresh loops currently running",
		},
	)
	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_total",
			Help: "Successful transaction mutations",
		},
		[]string{"operation"}, // create|update|delete
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(ComputeDuration)
	prometheus.MustRegister(RefreshCyclesTotal)
	prometheus.MustRegister(ActiveRefreshers)
	prometheus.MustRegister(TransactionsTotal)
}

// Collector adapts the registered collectors to the analytics
// MetricsCollector interface.
type Collector struct{}

func (Collector) RecordCacheHit(metric string) {
	CacheHitsTotal.WithLabelValues(metric).Inc()
}

func (Collector) RecordCacheMiss(metric string) {
	CacheMissesTotal.WithLabelValues(metric).Inc()
}

func (Collector) RecordComputeDuration(metric string, d time.Duration) {
	ComputeDuration.WithLabelValues(metric).Observe(d.Seconds())
}

func (Collector) RecordRefreshCycle(result string) {
	RefreshCyclesTotal.WithLabelValues(result).Inc()
}

func (Collector) RefresherStarted() {
	ActiveRefreshers.Inc()
}

func (Collector) RefresherStopped() {
	ActiveRefreshers.Dec()
}
