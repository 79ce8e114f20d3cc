package producer

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	produced            prometheus.Counter
	memoHits            prometheus.Counter
	verificationFailure prometheus.Counter
	baseNotFound        prometheus.Counter
}

// NewMetrics creates the producer counters and registers them on reg when it
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		produced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etherdelta",
			Subsystem: "producer",
			Name:      "deltas_produced_total",
			Help:      "Number of deltas computed and verified",
		}),
		memoHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etherdelta",
			Subsystem: "producer",
			Name:      "memo_hits_total",
			Help:      "Number of deltas served from the memo",
		}),
		verificationFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etherdelta",
			Subsystem: "producer",
			Name:      "verification_failures_total",
			Help:      "Number of deltas that did not rebuild their target",
		}),
		baseNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etherdelta",
			Subsystem: "producer",
			Name:      "base_not_found_total",
			Help:      "Number of differential requests naming an unknown base",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.produced, m.memoHits, m.verificationFailure, m.baseNotFound)
	}
	return m
}
