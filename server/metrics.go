package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luno/topodash"
)

var (
	clientCalls = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "topodash",
		Subsystem: "client",
		Name:      "calls_total",
	})
	clientFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "topodash",
		Subsystem: "client",
		Name:      "failures_total",
	})
	clientLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "topodash",
		Subsystem: "client",
		Name:      "call_seconds",
		Help:      "Latency of successful controller calls",
	})
)

func clientMetrics() topodash.Metrics {
	prometheus.MustRegister(clientCalls, clientFailures, clientLatency)
	return topodash.Metrics{
		Calls:    clientCalls,
		Failures: clientFailures,
		Latency:  clientLatency,
	}
}
