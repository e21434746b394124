package booking

import "time"

type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "Reserved"
	ReservationStatusCancelled ReservationStatus = "Cancelled"
)

type Reservation struct {
	ReservationID   int64             `json:"reservationId"`
	VehicleID       int64             `json:"vehicleId"`
	CustomerID      int64             `json:"customerId"`
	ReservationDate time.Time         `json:"reservationDate"`
	Status          ReservationStatus `json:"status"`
}

// Active reports whether the reservation still holds its vehicle.
func (r *Reservation) Active() bool {
	return r.Status == ReservationStatusReserved
}
