package observability

import (
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	backendErrors      *prometheus.CounterVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	sessionResolutions *prometheus.CounterVec
	seriesBuilds       *prometheus.CounterVec
	ordersCreated      prometheus.Counter
}

// Label values the snapshot reads back.
var (
	backendNames    = []string{"supabase", "postgres"}
	cacheNames      = []string{"role", "stats"}
	strategyNames   = []string{"direct", "user", "data.user", "user_metadata", "plain", "none"}
	seriesRangeKeys = []string{"day", "week", "month", "3m", "6m", "year"}
)

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vanix_request_duration_seconds",
				Help:    "Duration of service operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		backendErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vanix_backend_errors_total",
				Help: "Total errors returned by data backends.",
			},
			[]string{"backend"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vanix_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vanix_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		sessionResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vanix_session_resolutions_total",
				Help: "Session snapshots resolved, by winning strategy.",
			},
			[]string{"strategy"},
		),
		seriesBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vanix_series_builds_total",
				Help: "Order series built, by range.",
			},
			[]string{"range"},
		),
		ordersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vanix_orders_created_total",
				Help: "Orders placed through checkout.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrBackendError increments the backend error counter.
func (m *Metrics) IncrBackendError(backend string) {
	m.backendErrors.WithLabelValues(backend).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrSessionResolution counts a resolved snapshot. An empty strategy is
// recorded as "none".
func (m *Metrics) IncrSessionResolution(strategy string) {
	if strategy == "" {
		strategy = "none"
	}
	m.sessionResolutions.WithLabelValues(strategy).Inc()
}

// IncrSeriesBuild counts a built order series.
func (m *Metrics) IncrSeriesBuild(rng string) {
	m.seriesBuilds.WithLabelValues(rng).Inc()
}

// IncrOrderCreated counts a placed order.
func (m *Metrics) IncrOrderCreated() {
	m.ordersCreated.Inc()
}

// Snapshot reads the counters back for GET /v1/admin/metrics.
func (m *Metrics) Snapshot() *domain.MetricsSnapshot {
	snap := &domain.MetricsSnapshot{
		SessionResolutions: make(map[string]float64, len(strategyNames)),
		SeriesBuilds:       make(map[string]float64, len(seriesRangeKeys)),
		BackendErrors:      make(map[string]float64, len(backendNames)),
		OrdersCreated:      counterValue(m.ordersCreated),
		Period:             "all_time",
	}

	for _, s := range strategyNames {
		snap.SessionResolutions[s] = getCounterValue(m.sessionResolutions, s)
	}
	for _, r := range seriesRangeKeys {
		snap.SeriesBuilds[r] = getCounterValue(m.seriesBuilds, r)
	}
	for _, b := range backendNames {
		snap.BackendErrors[b] = getCounterValue(m.backendErrors, b)
	}

	var hits, misses float64
	for _, c := range cacheNames {
		hits += getCounterValue(m.cacheHits, c)
		misses += getCounterValue(m.cacheMisses, c)
	}
	if hits+misses > 0 {
		snap.CacheHitRate = hits / (hits + misses)
	}

	return snap
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	return counterValue(cv.WithLabelValues(label))
}

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
