package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each server gets
// its own registry so tests can build many servers side by side.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	tokens     prometheus.Histogram
	sentences  prometheus.Histogram
	wsSessions prometheus.Gauge
}

// NewMetrics creates and registers the server collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textseg_requests_total",
				Help: "Total number of segmentation requests",
			},
			[]string{"endpoint", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "textseg_request_duration_seconds",
				Help:    "Duration of segmentation requests",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"endpoint"},
		),
		tokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "textseg_tokens_per_text",
			Help:    "Number of tokens produced per text",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		sentences: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "textseg_sentences_per_text",
			Help:    "Number of sentences produced per text",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		wsSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "textseg_websocket_sessions",
			Help: "Number of open WebSocket sessions",
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.tokens, m.sentences, m.wsSessions)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeTokens(n int) {
	m.tokens.Observe(float64(n))
}

func (m *Metrics) observeSentences(sentences [][]string) {
	m.sentences.Observe(float64(len(sentences)))
	tokens := 0
	for _, s := range sentences {
		tokens += len(s)
	}
	m.tokens.Observe(float64(tokens))
}
