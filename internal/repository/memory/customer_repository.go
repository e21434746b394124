package memory

import (
	"context"
	"fmt"

	"rental-engine/internal/domain/customer"
	"rental-engine/internal/infrastructure/storage"
	"rental-engine/internal/pkg/apperrors"
)

type customerRepository struct {
	store *Store
}

var _ customer.Repository = (*customerRepository)(nil)

func cloneCustomer(c *customer.Customer) *customer.Customer {
	cp := *c
	return &cp
}

func (r *customerRepository) Add(ctx context.Context, c *customer.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[int64]bool, len(s.customers))
	var maxID int64
	for _, existing := range s.customers {
		taken[existing.CustomerID] = true
		if existing.CustomerID > maxID {
			maxID = existing.CustomerID
		}
	}

	id, err := resolveID(c.CustomerID, taken, maxID, s.idPolicy)
	if err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	c.CustomerID = id

	s.customers = append(s.customers, cloneCustomer(c))
	return s.persist(ctx, storage.KeyCustomers, s.encodeCustomers)
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.customers {
		if existing.CustomerID == c.CustomerID {
			s.customers[i] = cloneCustomer(c)
			return s.persist(ctx, storage.KeyCustomers, s.encodeCustomers)
		}
	}
	return fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, c.CustomerID)
}

func (r *customerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.CustomerID == customerID {
			return cloneCustomer(c), nil
		}
	}
	return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]*customer.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		customers = append(customers, cloneCustomer(c))
	}
	return customers, nil
}
