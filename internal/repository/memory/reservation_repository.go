package memory

import (
	"context"
	"fmt"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/infrastructure/storage"
	"rental-engine/internal/pkg/apperrors"
)

type reservationRepository struct {
	store *Store
}

var _ booking.ReservationRepository = (*reservationRepository)(nil)

func cloneReservation(r *booking.Reservation) *booking.Reservation {
	cp := *r
	return &cp
}

func (r *reservationRepository) Add(ctx context.Context, res *booking.Reservation) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[int64]bool, len(s.reservations))
	var maxID int64
	for _, existing := range s.reservations {
		taken[existing.ReservationID] = true
		if existing.ReservationID > maxID {
			maxID = existing.ReservationID
		}
	}

	id, err := resolveID(res.ReservationID, taken, maxID, s.idPolicy)
	if err != nil {
		return fmt.Errorf("reservation: %w", err)
	}
	res.ReservationID = id

	s.reservations = append(s.reservations, cloneReservation(res))
	return s.persist(ctx, storage.KeyReservations, s.encodeReservations)
}

func (r *reservationRepository) Update(ctx context.Context, res *booking.Reservation) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.reservations {
		if existing.ReservationID == res.ReservationID {
			s.reservations[i] = cloneReservation(res)
			return s.persist(ctx, storage.KeyReservations, s.encodeReservations)
		}
	}
	return fmt.Errorf("%w: reservation %d", apperrors.ErrNotFound, res.ReservationID)
}

func (r *reservationRepository) FindByID(ctx context.Context, reservationID int64) (*booking.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, res := range s.reservations {
		if res.ReservationID == reservationID {
			return cloneReservation(res), nil
		}
	}
	return nil, fmt.Errorf("%w: reservation %d", apperrors.ErrNotFound, reservationID)
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]*booking.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservations := make([]*booking.Reservation, 0, len(s.reservations))
	for _, res := range s.reservations {
		reservations = append(reservations, cloneReservation(res))
	}
	return reservations, nil
}

func (r *reservationRepository) FindActiveByVehicle(ctx context.Context, vehicleID int64) (*booking.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, res := range s.reservations {
		if res.VehicleID == vehicleID && res.Active() {
			return cloneReservation(res), nil
		}
	}
	return nil, fmt.Errorf("%w: no active reservation for vehicle %d", apperrors.ErrNotFound, vehicleID)
}
