package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reservation outcomes.
const (
	OutcomeSuccess             = "success"
	OutcomeInvalid             = "invalid"
	OutcomeFailed              = "failed"
	OutcomeArtifactUnavailable = "artifact_unavailable"
)

var (
	// ReservationsTotal counts reservation submissions by outcome
	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kadosh_reservations_total",
			Help: "Total number of reservation submissions",
		},
		[]string{"outcome"},
	)

	// NotificationsTotal counts notifier calls by notifier and status
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kadosh_notifications_total",
			Help: "Total number of reservation notifications",
		},
		[]string{"notifier", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kadosh_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	VehicleSearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kadosh_vehicle_searches_total",
			Help: "Total number of catalog searches",
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kadosh_rate_limited_total",
			Help: "Total number of reservation submissions rejected by the rate limiter",
		},
	)
)

// RecordNotification records one notifier call.
func RecordNotification(notifier string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	NotificationsTotal.WithLabelValues(notifier, status).Inc()
}
