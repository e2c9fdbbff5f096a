// Package metrics exposes Prometheus counters for the authentication gate
// and the login flow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the sink the gate and the auth service report to.
type Recorder interface {
	RecordGateOutcome(outcome string)
	RecordTheft()
	ObserveFingerprintScore(score float64)
	RecordLogin(outcome string)
}

// Collector implements Recorder on Prometheus metrics.
type Collector struct {
	gateOutcomes *prometheus.CounterVec
	thefts       prometheus.Counter
	scores       prometheus.Histogram
	logins       *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gateOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "gate_requests_total",
			Help:      "Requests evaluated by the authentication gate, by outcome.",
		}, []string{"outcome"}),
		thefts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "session_thefts_total",
			Help:      "Sessions revoked because the fingerprint did not match.",
		}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "authgate",
			Name:      "fingerprint_score",
			Help:      "Fingerprint similarity scores of versioned session tokens.",
			Buckets:   []float64{0, 0.2, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "login_attempts_total",
			Help:      "Login attempts, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.gateOutcomes, c.thefts, c.scores, c.logins)

	return c
}

func (c *Collector) RecordGateOutcome(outcome string) {
	c.gateOutcomes.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordTheft() {
	c.thefts.Inc()
}

func (c *Collector) ObserveFingerprintScore(score float64) {
	c.scores.Observe(score)
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordGateOutcome(string) {}
func (Nop) RecordTheft() {}
func (Nop) ObserveFingerprintScore(float64) {}
func (Nop) RecordLogin(string) {}

// Handler serves the gatherer in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
