package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Outbound API call latency in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "operation", "status_code"},
	)

	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of outbound API calls",
		},
		[]string{"service", "operation", "status_code"},
	)
)

func init() {
	Registry.MustRegister(UpstreamRequestDuration, UpstreamRequestsTotal)
}

// ObserveUpstream records one outbound call. status 0 means a transport error.
func ObserveUpstream(service, operation string, status int, started time.Time) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	UpstreamRequestDuration.WithLabelValues(service, operation, code).Observe(time.Since(started).Seconds())
	UpstreamRequestsTotal.WithLabelValues(service, operation, code).Inc()
}
