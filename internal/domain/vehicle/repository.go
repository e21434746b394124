package vehicle

import "context"

type Repository interface {
	// Add inserts a new vehicle, allocating an id when the record carries
	// none and resolving collisions per the store's id policy.
	Add(ctx context.Context, v *Vehicle) error

	// Update replaces the stored record with the same id.
	Update(ctx context.Context, v *Vehicle) error

	FindByID(ctx context.Context, vehicleID int64) (*Vehicle, error)

	FindAll(ctx context.Context) ([]*Vehicle, error)

	// Search returns vehicles matching the filter in repository iteration
	// order. An empty result is not an error.
	Search(ctx context.Context, filter Filter) ([]*Vehicle, error)

	Delete(ctx context.Context, vehicleID int64) error
}
