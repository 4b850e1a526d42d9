// Package metrics records cache and load activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lazy"

// Outcome labels for load metrics.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Prometheus implements ports.Metrics. A nil *Prometheus is valid and records nothing.
type Prometheus struct {
	lookups      *prometheus.CounterVec
	evictions    prometheus.Counter
	cacheSize    prometheus.Gauge
	cacheEntries prometheus.Gauge
	loads        *prometheus.CounterVec
	attempts     prometheus.Histogram
	loadDuration *prometheus.HistogramVec
	preloads     *prometheus.CounterVec
}

// New registers the loader metrics with reg.
func New(reg prometheus.Registerer) *Prometheus {
	return &Prometheus{
		lookups: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of cache lookups by result",
			},
			[]string{"result"}, // "hit", "miss"
		),
		evictions: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_evictions_total",
				Help:      "Total number of cache entries evicted",
			},
		),
		cacheSize: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_size",
				Help:      "Current total size of cached components in size units",
			},
		),
		cacheEntries: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cache_entries",
				Help:      "Current number of cached components",
			},
		),
		loads: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "loads_total",
				Help:      "Total number of component import sequences by outcome",
			},
			[]string{"component", "outcome"},
		),
		attempts: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_attempts",
				Help:      "Number of import attempts per load",
				Buckets:   []float64{1, 2, 3, 5, 10},
			},
		),
		loadDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_duration_milliseconds",
				Help:      "Duration of component loads including retries in milliseconds",
				Buckets: []float64{
					1,     // local modules
					10,    // 10ms
					50,    // 50ms
					100,   // 100ms
					500,   // 500ms
					1000,  // 1s, one retry
					5000,  // 5s
					30000, // default attempt timeout
				},
			},
			[]string{"outcome"},
		),
		preloads: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "preloads_total",
				Help:      "Total number of preloads requested by trigger",
			},
			[]string{"trigger"},
		),
	}
}

// CacheHit records a cache hit.
func (m *Prometheus) CacheHit() {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues("hit").Inc()
}

// CacheMiss records a cache miss.
func (m *Prometheus) CacheMiss() {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues("miss").Inc()
}

// CacheEvicted records evicted entries.
func (m *Prometheus) CacheEvicted(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.evictions.Add(float64(count))
}

// CacheSize records the current cache occupancy.
func (m *Prometheus) CacheSize(total, entries int) {
	if m == nil {
		return
	}
	m.cacheSize.Set(float64(total))
	m.cacheEntries.Set(float64(entries))
}

// LoadCompleted records the outcome of one import sequence.
func (m *Prometheus) LoadCompleted(name string, attempts int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.loads.WithLabelValues(name, outcome).Inc()
	m.attempts.Observe(float64(attempts))
	m.loadDuration.WithLabelValues(outcome).Observe(float64(duration.Milliseconds()))
}

// PreloadTriggered records a preload request.
func (m *Prometheus) PreloadTriggered(trigger string) {
	if m == nil {
		return
	}
	m.preloads.WithLabelValues(trigger).Inc()
}
