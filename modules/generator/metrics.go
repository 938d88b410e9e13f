package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "radiolist"

type metrics struct {
	stations prometheus.Gauge
	streams  prometheus.Gauge
	entries  *prometheus.GaugeVec
	writes   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		stations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stations",
			Help:      "Stations returned by the directory.",
		}),
		streams: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "streams",
			Help:      "Stream candidates matching the configured format.",
		}),
		entries: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "playlist_entries",
			Help:      "Entries in the last written playlist.",
		}, []string{"format"}),
		writes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "playlist_writes_total",
			Help:      "Playlist writes by format and result.",
		}, []string{"format", "result"}),
	}
}
