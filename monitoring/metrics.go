package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "venues_bookings_submitted_total",
		Help: "Booking requests accepted into the review queue.",
	})

	BookingReviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venues_booking_reviews_total",
		Help: "Booking review decisions by result.",
	}, []string{"result"})

	PaymentConfirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "venues_payment_confirmations_total",
		Help: "Payment confirmations by flow and result.",
	}, []string{"flow", "result"})

	ProviderRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "venues_provider_request_duration_seconds",
		Help:    "Latency of payment provider calls.",
		Buckets: prometheus.DefBuckets,
	})
)
