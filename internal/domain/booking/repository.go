package booking

import "context"

type RentalRepository interface {
	Add(ctx context.Context, rental *RentalTransaction) error

	Update(ctx context.Context, rental *RentalTransaction) error

	FindByID(ctx context.Context, rentalID int64) (*RentalTransaction, error)

	FindAll(ctx context.Context) ([]*RentalTransaction, error)

	// FindActiveByVehicle returns the rental holding the vehicle, Rented or
	// Overdue. At most one such rental exists per vehicle at any time.
	FindActiveByVehicle(ctx context.Context, vehicleID int64) (*RentalTransaction, error)
}

type ReservationRepository interface {
	Add(ctx context.Context, res *Reservation) error

	Update(ctx context.Context, res *Reservation) error

	FindByID(ctx context.Context, reservationID int64) (*Reservation, error)

	FindAll(ctx context.Context) ([]*Reservation, error)

	// FindActiveByVehicle returns the Reserved reservation holding the
	// vehicle. At most one exists per vehicle at any time.
	FindActiveByVehicle(ctx context.Context, vehicleID int64) (*Reservation, error)
}
