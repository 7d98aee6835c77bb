// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	ProjectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "growth_lab_projections_total",
			Help: "Total number of Growth Lab projections by qualification tier",
		},
		[]string{"qualification"},
	)

	EnquiriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiries_total",
			Help: "Total number of enquiry submissions by outcome",
		},
		[]string{"outcome"},
	)

	EmailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enquiry_email_send_duration_seconds",
			Help:    "Duration of email provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "status"},
	)
)

// Enquiry outcomes.
const (
	OutcomeSent      = "sent"
	OutcomeInvalid   = "invalid"
	OutcomeSpam      = "spam"
	OutcomeThrottled = "throttled"
	OutcomeFailed    = "failed"
)
