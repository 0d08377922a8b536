package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbox_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadbox_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Capture funnel metrics
	LeadsCapturedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadbox_leads_captured_total",
			Help: "Total number of leads created through the public form",
		},
	)

	CaptureRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadbox_capture_rejected_total",
			Help: "Total number of public form submissions rejected by validation",
		},
	)

	// Notification metrics
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbox_notifications_total",
			Help: "Lead notification dispatch outcomes",
		},
		[]string{"outcome"}, // sent, failed, skipped
	)
)
