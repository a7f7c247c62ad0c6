package issuance

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricNamePrefix = "olymp_certificate_"

// Metrics counts issuance outcomes. The zero value records nothing until
// Register is called.
type Metrics struct {
	issuedCounter   prometheus.Counter
	failedCounter   prometheus.Counter
	renderHistogram prometheus.Histogram

	registerOnce sync.Once
}

// Register registers the collectors with registry. Nil registry is a no-op
// and repeated calls are ignored.
func (m *Metrics) Register(registry prometheus.Registerer) {
	if m == nil || registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.issuedCounter = factory.NewCounter(prometheus.CounterOpts{
			Name: metricNamePrefix + "issued_total",
			Help: "Total number of certificates issued",
		})

		m.failedCounter = factory.NewCounter(prometheus.CounterOpts{
			Name: metricNamePrefix + "issue_failures_total",
			Help: "Total number of participants whose certificate could not be issued",
		})

		m.renderHistogram = factory.NewHistogram(prometheus.HistogramOpts{
			Name:    metricNamePrefix + "render_duration_seconds",
			Help:    "Time spent rendering one certificate",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		})
	})
}

func (m *Metrics) incIssued() {
	if m != nil && m.issuedCounter != nil {
		m.issuedCounter.Inc()
	}
}

func (m *Metrics) incFailed() {
	if m != nil && m.failedCounter != nil {
		m.failedCounter.Inc()
	}
}

func (m *Metrics) observeRender(elapsed time.Duration) {
	if m != nil && m.renderHistogram != nil {
		m.renderHistogram.Observe(elapsed.Seconds())
	}
}
