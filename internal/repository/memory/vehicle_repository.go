package memory

import (
	"context"
	"fmt"

	"rental-engine/internal/domain/vehicle"
	"rental-engine/internal/infrastructure/storage"
	"rental-engine/internal/pkg/apperrors"
)

type vehicleRepository struct {
	store *Store
}

var _ vehicle.Repository = (*vehicleRepository)(nil)

func cloneVehicle(v *vehicle.Vehicle) *vehicle.Vehicle {
	cp := *v
	return &cp
}

func (r *vehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[int64]bool, len(s.vehicles))
	var maxID int64
	for _, existing := range s.vehicles {
		taken[existing.VehicleID] = true
		if existing.VehicleID > maxID {
			maxID = existing.VehicleID
		}
	}

	id, err := resolveID(v.VehicleID, taken, maxID, s.idPolicy)
	if err != nil {
		return fmt.Errorf("vehicle: %w", err)
	}
	v.VehicleID = id

	s.vehicles = append(s.vehicles, cloneVehicle(v))
	return s.persist(ctx, storage.KeyVehicles, s.encodeVehicles)
}

func (r *vehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.vehicles {
		if existing.VehicleID == v.VehicleID {
			s.vehicles[i] = cloneVehicle(v)
			return s.persist(ctx, storage.KeyVehicles, s.encodeVehicles)
		}
	}
	return fmt.Errorf("%w: vehicle %d", apperrors.ErrNotFound, v.VehicleID)
}

func (r *vehicleRepository) FindByID(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vehicles {
		if v.VehicleID == vehicleID {
			return cloneVehicle(v), nil
		}
	}
	return nil, fmt.Errorf("%w: vehicle %d", apperrors.ErrNotFound, vehicleID)
}

func (r *vehicleRepository) FindAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	vehicles := make([]*vehicle.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		vehicles = append(vehicles, cloneVehicle(v))
	}
	return vehicles, nil
}

func (r *vehicleRepository) Search(ctx context.Context, filter vehicle.Filter) ([]*vehicle.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*vehicle.Vehicle
	for _, v := range s.vehicles {
		if filter.Matches(v) {
			matches = append(matches, cloneVehicle(v))
		}
	}
	return matches, nil
}

func (r *vehicleRepository) Delete(ctx context.Context, vehicleID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.vehicles {
		if v.VehicleID == vehicleID {
			s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
			return s.persist(ctx, storage.KeyVehicles, s.encodeVehicles)
		}
	}
	return fmt.Errorf("%w: vehicle %d", apperrors.ErrNotFound, vehicleID)
}
