// Package prometheus instruments lodestone with client_golang metrics.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/lodestone"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	labelHost    = "host"
	labelOutcome = "outcome"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the collectors lodestone reports and the registry they
// are registered with.
type Metrics struct {
	Registry *prometheus.Registry

	fetches   *prometheus.CounterVec
	durations *prometheus.SummaryVec
	bytes     prometheus.Counter
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lodestone_fetches_total",
				Help: "Number of page fetches by host and outcome.",
			},
			[]string{labelHost, labelOutcome},
		),
		durations: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "lodestone_fetch_duration_seconds",
				Help:       "Page fetch duration including the response body.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{labelHost},
		),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lodestone_fetch_bytes_total",
			Help: "Bytes of markup fetched.",
		}),
	}
	m.Registry.MustRegister(m.fetches, m.durations, m.bytes)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Fetches returns the fetch counter for host and outcome.
func (m *Metrics) Fetches(host, outcome string) prometheus.Counter {
	return m.fetches.WithLabelValues(host, outcome)
}

// Bytes returns the fetched bytes counter.
func (m *Metrics) Bytes() prometheus.Counter {
	return m.bytes
}

var _ lodestone.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher wraps a Fetcher and records every fetch in Metrics.
type InstrumentedFetcher struct {
	next    lodestone.Fetcher
	metrics *Metrics
}

// NewInstrumentedFetcher creates a new InstrumentedFetcher.
func NewInstrumentedFetcher(next lodestone.Fetcher, m *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		host := lodestone.Host(url)
		f.metrics.durations.WithLabelValues(host).Observe(time.Since(begin).Seconds())
		f.metrics.fetches.WithLabelValues(host, outcome(err)).Inc()
		f.metrics.bytes.Add(float64(len(html)))
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case lodestone.ErrorCode(err) == lodestone.ENOTFOUND:
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
