package notifier

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricNamePrefix = "olymp_certificate_"

// Metrics counts notification outcomes once registered.
type Metrics struct {
	sentCounter   prometheus.Counter
	failedCounter prometheus.Counter

	registerOnce sync.Once
}

func (m *Metrics) Register(registry prometheus.Registerer) {
	if m == nil || registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.sentCounter = factory.NewCounter(prometheus.CounterOpts{
			Name: metricNamePrefix + "notifications_sent_total",
			Help: "Total number of certificate emails delivered",
		})

		m.failedCounter = factory.NewCounter(prometheus.CounterOpts{
			Name: metricNamePrefix + "notification_failures_total",
			Help: "Total number of certificate emails that failed",
		})
	})
}

func (m *Metrics) incSent() {
	if m != nil && m.sentCounter != nil {
		m.sentCounter.Inc()
	}
}

func (m *Metrics) incFailed() {
	if m != nil && m.failedCounter != nil {
		m.failedCounter.Inc()
	}
}
