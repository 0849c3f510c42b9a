package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Checkout pipeline counters. Effect failures are swallowed by the
// orchestrator, so this is the only place they remain visible.
var (
	CheckoutAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by terminal outcome",
	}, []string{"outcome"})

	EffectFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_effect_failures_total",
		Help: "Post-commit effect failures by effect",
	}, []string{"effect"})

	IntegrityFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_integrity_failures_total",
		Help: "Order writes that failed after a completed gateway interaction",
	})
)

func init() {
	prometheus.MustRegister(CheckoutAttempts, EffectFailures, IntegrityFailures)
}
