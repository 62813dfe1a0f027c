package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roller_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roller_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	AlertSweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roller_alert_sweeps_total",
		Help: "Completed delay-alert sweeps",
	})

	AlertsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roller_alerts_sent_total",
		Help: "Delay alert emails dispatched (attempt-counted)",
	})
)
