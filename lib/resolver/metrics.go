package resolver

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	resolutions *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "etherdelta",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Resolved requests by source of the content",
		}, []string{"source"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "etherdelta",
			Subsystem: "resolver",
			Name:      "differential_fallbacks_total",
			Help:      "Differential attempts abandoned for a full fetch, by reason",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.resolutions, m.fallbacks)
	}
	return m
}
