package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tronbridge",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream API requests",
		},
		[]string{"service", "endpoint", "status"}, // fullnode/indexer, path, http status or "error"
	)

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tronbridge",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)

	broadcastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tronbridge",
			Subsystem: "upstream",
			Name:      "broadcasts_total",
			Help:      "Total number of transaction broadcasts",
		},
		[]string{"result"}, // accepted, rejected
	)
)

// ObserveUpstreamRequest records one upstream API request outcome.
func ObserveUpstreamRequest(service, endpoint, status string, duration time.Duration) {
	upstreamRequestsTotal.WithLabelValues(service, endpoint, status).Inc()
	upstreamRequestDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())
}

// CountBroadcast records whether the network accepted a broadcast.
func CountBroadcast(accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	broadcastsTotal.WithLabelValues(result).Inc()
}
