// Package metrics exposes interaction counters for the webhook.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded against interactions and commands.
const (
	OutcomeOK           = "ok"
	OutcomeUnrecognized = "unrecognized"
	OutcomeUnavailable  = "unavailable"
	OutcomeStoreError   = "store_error"
)

// Recorder receives pipeline events.
type Recorder interface {
	IncInteraction(kind, outcome string)
	IncVerificationFailure(reason string)
	ObserveCommand(command, outcome string, durationSeconds float64)
	SetStoreReady(ready bool)
}

// Noop implements Recorder without emitting anything.
type Noop struct{}

func (Noop) IncInteraction(string, string)          {}
func (Noop) IncVerificationFailure(string)          {}
func (Noop) ObserveCommand(string, string, float64) {}
func (Noop) SetStoreReady(bool)                     {}

// Prom implements Recorder on a private registry so that several instances
// can coexist in one process.
type Prom struct {
	registry      *prometheus.Registry
	interactions  *prometheus.CounterVec
	verifyFailed  *prometheus.CounterVec
	commandLength *prometheus.HistogramVec
	storeReady    prometheus.Gauge
}

func NewProm(namespace string) *Prom {
	p := &Prom{
		registry: prometheus.NewRegistry(),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Verified interactions by kind and outcome",
		}, []string{"kind", "outcome"}),
		verifyFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_failures_total",
			Help:      "Rejected requests by reason",
		}, []string{"reason"}),
		commandLength: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command handler latency by command and outcome",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command", "outcome"}),
		storeReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_ready",
			Help:      "1 when the backing stores initialized successfully",
		}),
	}
	p.registry.MustRegister(
		p.interactions,
		p.verifyFailed,
		p.commandLength,
		p.storeReady,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prom) IncInteraction(kind, outcome string) {
	p.interactions.WithLabelValues(kind, outcome).Inc()
}

func (p *Prom) IncVerificationFailure(reason string) {
	p.verifyFailed.WithLabelValues(reason).Inc()
}

func (p *Prom) ObserveCommand(command, outcome string, durationSeconds float64) {
	p.commandLength.WithLabelValues(command, outcome).Observe(durationSeconds)
}

func (p *Prom) SetStoreReady(ready bool) {
	if ready {
		p.storeReady.Set(1)
		return
	}
	p.storeReady.Set(0)
}

// Registry returns the registry backing p.
func (p *Prom) Registry() *prometheus.Registry {
	return p.registry
}

// Handler returns an HTTP handler for /metrics.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
