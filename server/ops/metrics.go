package ops

import "github.com/prometheus/client_golang/prometheus"

var (
	sourceLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "topodash",
		Subsystem: "fetch",
		Name:      "source_seconds",
		Help:      "Latency of fetching a single source",
	}, []string{"source"})

	pollCycles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "topodash",
		Subsystem: "poller",
		Name:      "cycles_total",
	})

	pollFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "topodash",
		Subsystem: "poller",
		Name:      "failures_total",
	})

	pollDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "topodash",
		Subsystem: "poller",
		Name:      "cycle_seconds",
		Help:      "Duration of a fetch, build and layout cycle",
	})

	snapshotSwitches = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "topodash",
		Subsystem: "poller",
		Name:      "switches",
		Help:      "Switches in the current snapshot",
	}, []string{"class"})
)

func init() {
	prometheus.MustRegister(sourceLatency, pollCycles, pollFailures, pollDuration, snapshotSwitches)
}
