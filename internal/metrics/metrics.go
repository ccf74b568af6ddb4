package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	BookingsCreated   prometheus.Counter
	BookingsCancelled prometheus.Counter
	SlotConflicts     prometheus.Counter
	ValidationErrors  *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtbooking_bookings_created_total",
			Help: "Total number of bookings created",
		}),

		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtbooking_bookings_cancelled_total",
			Help: "Total number of bookings cancelled",
		}),

		SlotConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "courtbooking_slot_conflicts_total",
			Help: "Booking attempts rejected because the interval was taken",
		}),

		ValidationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "courtbooking_validation_errors_total",
			Help: "Validation failures by reason",
		}, []string{"reason"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "courtbooking_request_duration_seconds",
			Help:    "Duration of HTTP request handling",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
