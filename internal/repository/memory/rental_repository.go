package memory

import (
	"context"
	"fmt"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/infrastructure/storage"
	"rental-engine/internal/pkg/apperrors"
)

type rentalRepository struct {
	store *Store
}

var _ booking.RentalRepository = (*rentalRepository)(nil)

func cloneRental(r *booking.RentalTransaction) *booking.RentalTransaction {
	cp := *r
	if r.ActualReturnDate != nil {
		actual := *r.ActualReturnDate
		cp.ActualReturnDate = &actual
	}
	return &cp
}

func (r *rentalRepository) Add(ctx context.Context, rental *booking.RentalTransaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[int64]bool, len(s.rentals))
	var maxID int64
	for _, existing := range s.rentals {
		taken[existing.RentalID] = true
		if existing.RentalID > maxID {
			maxID = existing.RentalID
		}
	}

	id, err := resolveID(rental.RentalID, taken, maxID, s.idPolicy)
	if err != nil {
		return fmt.Errorf("rental: %w", err)
	}
	rental.RentalID = id

	s.rentals = append(s.rentals, cloneRental(rental))
	return s.persist(ctx, storage.KeyRentals, s.encodeRentals)
}

func (r *rentalRepository) Update(ctx context.Context, rental *booking.RentalTransaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.rentals {
		if existing.RentalID == rental.RentalID {
			s.rentals[i] = cloneRental(rental)
			return s.persist(ctx, storage.KeyRentals, s.encodeRentals)
		}
	}
	return fmt.Errorf("%w: rental %d", apperrors.ErrNotFound, rental.RentalID)
}

func (r *rentalRepository) FindByID(ctx context.Context, rentalID int64) (*booking.RentalTransaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rental := range s.rentals {
		if rental.RentalID == rentalID {
			return cloneRental(rental), nil
		}
	}
	return nil, fmt.Errorf("%w: rental %d", apperrors.ErrNotFound, rentalID)
}

func (r *rentalRepository) FindAll(ctx context.Context) ([]*booking.RentalTransaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rentals := make([]*booking.RentalTransaction, 0, len(s.rentals))
	for _, rental := range s.rentals {
		rentals = append(rentals, cloneRental(rental))
	}
	return rentals, nil
}

func (r *rentalRepository) FindActiveByVehicle(ctx context.Context, vehicleID int64) (*booking.RentalTransaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rental := range s.rentals {
		if rental.VehicleID == vehicleID && rental.Active() {
			return cloneRental(rental), nil
		}
	}
	return nil, fmt.Errorf("%w: no active rental for vehicle %d", apperrors.ErrNotFound, vehicleID)
}
