package service

import "github.com/prometheus/client_golang/prometheus"

const outcomeOK = "ok"

// AuthMetrics counts auth operations by outcome. A nil *AuthMetrics is valid
// and records nothing.
type AuthMetrics struct {
	events *prometheus.CounterVec
}

func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	m := &AuthMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "auth",
			Name:      "events_total",
			Help:      "Auth operations partitioned by outcome.",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.events)
	return m
}

func (m *AuthMetrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = err.Error()
	}
	m.events.WithLabelValues(operation, outcome).Inc()
}
