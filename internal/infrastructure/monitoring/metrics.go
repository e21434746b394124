package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BookingMetrics struct {
	RentalsCreatedTotal       prometheus.Counter
	RentalsClosedTotal        prometheus.Counter
	ReservationsCreatedTotal  prometheus.Counter
	ReservationsCancelled     prometheus.Counter
	BookingConflictsTotal     prometheus.Counter
	VehiclesMarkedOverdueTotal prometheus.Counter
}

type SweepMetrics struct {
	Duration *prometheus.HistogramVec
	Errors   prometheus.Counter
}

var (
	Booking = BookingMetrics{
		RentalsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_engine_rentals_created_total",
				Help: "Total number of rental transactions opened.",
			},
		),
		RentalsClosedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_engine_rentals_closed_total",
				Help: "Total number of rental transactions returned.",
			},
		),
		ReservationsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_engine_reservations_created_total",
				Help: "Total number of reservations placed.",
			},
		),
		ReservationsCancelled: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_engine_reservations_cancelled_total",
				Help: "Total number of reservations cancelled.",
			},
		),
		BookingConflictsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_engine_booking_conflicts_total",
				Help: "Total number of bookings refused because the vehicle was committed.",
			},
		),
		VehiclesMarkedOverdueTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_engine_rentals_marked_overdue_total",
				Help: "Total number of rentals reclassified from Rented to Overdue.",
			},
		),
	}

	Sweep = SweepMetrics{
		Duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rental_engine_overdue_sweep_duration_seconds",
				Help:    "Histogram of overdue sweep durations.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"status"},
		),
		Errors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rental_engine_overdue_sweep_errors_total",
				Help: "Total number of per-rental errors encountered during overdue sweeps.",
			},
		),
	}
)

func RecordRentalCreated() {
	Booking.RentalsCreatedTotal.Inc()
}

func RecordRentalClosed() {
	Booking.RentalsClosedTotal.Inc()
}

func RecordReservationCreated() {
	Booking.ReservationsCreatedTotal.Inc()
}

func RecordReservationCancelled() {
	Booking.ReservationsCancelled.Inc()
}

func RecordBookingConflict() {
	Booking.BookingConflictsTotal.Inc()
}

func RecordMarkedOverdue(count int) {
	for i := 0; i < count; i++ {
		Booking.VehiclesMarkedOverdueTotal.Inc()
	}
}

func RecordSweep(duration time.Duration, errCount int) {
	status := "success"
	if errCount > 0 {
		status = "error"
		for i := 0; i < errCount; i++ {
			Sweep.Errors.Inc()
		}
	}
	Sweep.Duration.WithLabelValues(status).Observe(duration.Seconds())
}
