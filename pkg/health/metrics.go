package health

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "radiolist"

type Metrics struct {
	probes        *prometheus.CounterVec
	probeDuration prometheus.Histogram
	checkDuration prometheus.Gauge
}

// NewMetrics registers the health check collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		probes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "probes_total",
			Help:      "Stream probes by outcome.",
		}, []string{"status"}),
		probeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "probe_duration_seconds",
			Help:      "Time taken by a single stream probe.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		checkDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "health_check_duration_seconds",
			Help:      "Wall-clock time of the last health check run.",
		}),
	}
}

func (m *Metrics) observe(o Outcome) {
	if m == nil {
		return
	}
	m.probes.WithLabelValues(o.Status.String()).Inc()
	m.probeDuration.Observe(o.Latency.Seconds())
}

func (m *Metrics) observeRun(seconds float64) {
	if m == nil {
		return
	}
	m.checkDuration.Set(seconds)
}
