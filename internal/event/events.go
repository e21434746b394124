package event

import "time"

// Routing keys for booking lifecycle events.
const (
	routingKeyRentalCreated        = "rental.created"
	routingKeyRentalOverdue        = "rental.overdue"
	routingKeyRentalReturned       = "rental.returned"
	routingKeyReservationCreated   = "reservation.created"
	routingKeyReservationCancelled = "reservation.cancelled"
)

type RentalEvent struct {
	RentalID    int64     `json:"rentalId"`
	VehicleID   int64     `json:"vehicleId"`
	CustomerID  int64     `json:"customerId"`
	Status      string    `json:"status"`
	OverdueDays int       `json:"overdueDays"`
	RentalFee   string    `json:"rentalFee"`
	Timestamp   time.Time `json:"timestamp"`
}

type ReservationEvent struct {
	ReservationID int64     `json:"reservationId"`
	VehicleID     int64     `json:"vehicleId"`
	CustomerID    int64     `json:"customerId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}
