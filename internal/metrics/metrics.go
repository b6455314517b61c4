package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablereserve_bookings_created_total",
		Help: "Bookings accepted after the capacity re-check.",
	})

	BookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablereserve_bookings_rejected_total",
		Help: "Booking attempts rejected, by business reason.",
	}, []string{"reason"})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tablereserve_bookings_cancelled_total",
		Help: "Bookings cancelled by diners or owners.",
	})

	AvailabilityQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablereserve_availability_queries_total",
		Help: "Availability queries, by cache outcome.",
	}, []string{"cache"})
)
