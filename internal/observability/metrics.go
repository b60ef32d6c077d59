package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Relay names used as metric labels.
const (
	RelayLead = "lead"
	RelayLog  = "log"
)

// Forward outcomes used as metric labels.
const (
	OutcomeForwarded     = "forwarded"
	OutcomeUpstreamError = "upstream_error"
	OutcomeTransportErr  = "transport_error"
	OutcomeNotConfigured = "not_configured"
	OutcomeBadRequest    = "bad_request"
)

// Metrics holds the relay instruments on a private registry so several
// servers (e.g. in tests) never collide on registration.
type Metrics struct {
	registry        *prometheus.Registry
	forwardsTotal   *prometheus.CounterVec
	forwardDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		forwardsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "landing",
				Subsystem: "relay",
				Name:      "forwards_total",
				Help:      "Relay requests by relay and outcome.",
			},
			[]string{"relay", "outcome"},
		),
		forwardDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "landing",
				Subsystem: "relay",
				Name:      "forward_duration_seconds",
				Help:      "Latency of outbound webhook calls.",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"relay"},
		),
	}
}

// RecordOutcome counts one relay request. Safe on a nil receiver.
func (m *Metrics) RecordOutcome(relay, outcome string) {
	if m == nil {
		return
	}
	m.forwardsTotal.WithLabelValues(relay, outcome).Inc()
}

// ObserveForward records the latency of one outbound call. Safe on a nil receiver.
func (m *Metrics) ObserveForward(relay string, d time.Duration) {
	if m == nil {
		return
	}
	m.forwardDuration.WithLabelValues(relay).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
