package customer

import "context"

type Repository interface {
	// Add inserts a new customer, allocating an id when the record carries
	// none and resolving collisions per the store's id policy.
	Add(ctx context.Context, customer *Customer) error

	// Update replaces the stored record with the same id.
	Update(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)
}
