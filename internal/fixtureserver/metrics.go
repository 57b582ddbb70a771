package fixtureserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "patentai_fixture"

// Metrics holds the fixture service collectors on a private registry, so
// several servers can share one process.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	matches    prometheus.Histogram
	corpusSize prometheus.Gauge
}

// NewMetrics registers the fixture collectors plus the Go runtime ones.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by route and status code.",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		matches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "matches_per_request",
			Help:      "Number of patents returned per find-similar request.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10},
		}),
		corpusSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "corpus_records",
			Help:      "Records currently indexed.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.matches,
		m.corpusSize,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) observeMatches(n int) {
	if m == nil {
		return
	}
	m.matches.Observe(float64(n))
}

func (m *Metrics) setCorpusSize(n int) {
	if m == nil {
		return
	}
	m.corpusSize.Set(float64(n))
}
