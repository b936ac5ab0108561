// Package metrics exports engine, cache and HTTP events as Prometheus
// metrics by implementing the observability hooks.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/rotacheck/pkg/observability"
)

const namespace = "rotacheck"

// Metrics holds the collectors on a private registry, so several instances
// (one per test, say) never collide.
type Metrics struct {
	registry *prometheus.Registry

	// validations counts lineup validations.
	// Labels: result (legal, illegal), cached (true, false)
	validations *prometheus.CounterVec

	// violations counts reported violations per validation.
	violations prometheus.Histogram

	// boundsCalls counts bounds calculations.
	// Labels: slot (1-6), cached (true, false)
	boundsCalls *prometheus.CounterVec

	// engineLatency measures engine call duration.
	// Labels: op (validate, bounds)
	engineLatency *prometheus.HistogramVec

	// cacheEvents counts cache lookups and writes.
	// Labels: type (validate, bounds), event (hit, miss, set, error)
	cacheEvents *prometheus.CounterVec

	// cacheBytes counts bytes written to the cache.
	cacheBytes prometheus.Counter

	// requests counts served HTTP requests.
	// Labels: method, route, code
	requests *prometheus.CounterVec

	// requestLatency measures HTTP handler duration.
	// Labels: method, route
	requestLatency *prometheus.HistogramVec

	// inFlight is the number of requests being served.
	inFlight prometheus.Gauge
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		validations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "validations_total",
			Help:      "Lineup validations by outcome",
		}, []string{"result", "cached"}),
		violations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "violations",
			Help:      "Violations reported per validation",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 8},
		}),
		boundsCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "bounds_total",
			Help:      "Bounds calculations by slot",
		}, []string{"slot", "cached"}),
		engineLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "duration_seconds",
			Help:      "Engine call latency in seconds",
			Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 1e-2},
		}, []string{"op"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache lookups and writes by key type",
		}, []string{"type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "code"}),
		requestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served",
		}),
	}
}

// Register installs m as the engine, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetEngineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// =============================================================================
// Engine Hooks
// =============================================================================

func (m *Metrics) OnValidate(_ context.Context, legal bool, violations int, cached bool, d time.Duration) {
	result := "illegal"
	if legal {
		result = "legal"
	}
	m.validations.WithLabelValues(result, strconv.FormatBool(cached)).Inc()
	m.violations.Observe(float64(violations))
	m.engineLatency.WithLabelValues("validate").Observe(d.Seconds())
}

func (m *Metrics) OnBounds(_ context.Context, slot int, _ bool, cached bool, d time.Duration) {
	m.boundsCalls.WithLabelValues(strconv.Itoa(slot), strconv.FormatBool(cached)).Inc()
	m.engineLatency.WithLabelValues("bounds").Observe(d.Seconds())
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

func (m *Metrics) OnCacheError(_ context.Context, keyType string, _ error) {
	m.cacheEvents.WithLabelValues(keyType, "error").Inc()
}

// =============================================================================
// HTTP Hooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.inFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.EngineHooks = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)
