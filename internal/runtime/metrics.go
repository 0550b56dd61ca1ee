package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engined",
			Subsystem: "runtime",
			Name:      "builds_total",
			Help:      "Total number of runtime build attempts",
		},
		[]string{"result"},
	)

	buildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "engined",
			Subsystem: "runtime",
			Name:      "build_duration_seconds",
			Help:      "Duration of runtime builds in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		},
	)

	activeEngines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "engined",
			Subsystem: "runtime",
			Name:      "active_engines",
			Help:      "Number of live engine handles",
		},
	)
)

func init() {
	prometheus.MustRegister(buildsTotal, buildDuration, activeEngines)
}
