package vehicle

import (
	"fmt"

	"rental-engine/internal/pkg/apperrors"
)

// IsAvailable reports whether the vehicle can take a new commitment.
func (v *Vehicle) IsAvailable() bool {
	return v.Availability
}

// Commit marks the vehicle unavailable with the given booked status. Both
// fields change together; callers never see availability true with a
// non-Available status or the other way round.
func (v *Vehicle) Commit(status Status) error {
	if status != StatusRented && status != StatusReserved {
		return fmt.Errorf("%w: cannot commit vehicle to status %q", apperrors.ErrInvalidArgument, status)
	}
	if !v.Availability {
		return fmt.Errorf("%w: vehicle %d is %s", apperrors.ErrVehicleUnavailable, v.VehicleID, v.Status)
	}
	v.Availability = false
	v.Status = status
	return nil
}

// Release puts the vehicle back into the bookable state.
func (v *Vehicle) Release() {
	v.Availability = true
	v.Status = StatusAvailable
}
