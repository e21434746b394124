package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/customer"
	"rental-engine/internal/domain/vehicle"
	"rental-engine/internal/infrastructure/storage"
	"rental-engine/internal/pkg/apperrors"
)

// IDPolicy decides what happens when a caller inserts a record that carries
// an id already present in the collection.
type IDPolicy int

const (
	// IDReassign silently moves the colliding record to max id + 1.
	IDReassign IDPolicy = iota
	// IDReject fails the insert with ErrAlreadyExists.
	IDReject
)

// Store holds every collection in memory and writes a full JSON snapshot of
// the mutated collection after each change. It is the authoritative state;
// the snapshot store is only consulted again on the next startup.
type Store struct {
	mu        sync.RWMutex
	snapshots storage.SnapshotStore
	logger    *slog.Logger
	idPolicy  IDPolicy

	customers    []*customer.Customer
	vehicles     []*vehicle.Vehicle
	rentals      []*booking.RentalTransaction
	reservations []*booking.Reservation
}

type Option func(*Store)

func WithIDPolicy(policy IDPolicy) Option {
	return func(s *Store) { s.idPolicy = policy }
}

func NewStore(snapshots storage.SnapshotStore, logger *slog.Logger, opts ...Option) *Store {
	if snapshots == nil {
		panic("memory store requires a snapshot store")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		snapshots: snapshots,
		logger:    logger.With(slog.String("component", "memoryStore")),
		idPolicy:  IDReassign,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collections with the persisted snapshots.
// Missing snapshots leave the corresponding collection empty.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := loadSnapshot(ctx, s.snapshots, storage.KeyCustomers, decodeCustomers)
	if err != nil {
		return err
	}
	vehicles, err := loadSnapshot(ctx, s.snapshots, storage.KeyVehicles, decodeVehicles)
	if err != nil {
		return err
	}
	rentals, err := loadSnapshot(ctx, s.snapshots, storage.KeyRentals, decodeRentals)
	if err != nil {
		return err
	}
	reservations, err := loadSnapshot(ctx, s.snapshots, storage.KeyReservations, decodeReservations)
	if err != nil {
		return err
	}

	s.customers = customers
	s.vehicles = vehicles
	s.rentals = rentals
	s.reservations = reservations

	s.logger.InfoContext(ctx, "Loaded snapshots into memory store",
		slog.Int("customers", len(customers)),
		slog.Int("vehicles", len(vehicles)),
		slog.Int("rentals", len(rentals)),
		slog.Int("reservations", len(reservations)))
	return nil
}

func loadSnapshot[T any](ctx context.Context, snapshots storage.SnapshotStore, key string, decode func([]byte) ([]T, error)) ([]T, error) {
	data, err := snapshots.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	if data == nil {
		return nil, nil
	}
	records, err := decode(data)
	if err != nil {
		return nil, apperrors.WrapStorageError(err, fmt.Sprintf("corrupt snapshot %q", key))
	}
	return records, nil
}

// Customers returns the customer repository view over the store.
func (s *Store) Customers() customer.Repository { return &customerRepository{store: s} }

// Vehicles returns the vehicle repository view over the store.
func (s *Store) Vehicles() vehicle.Repository { return &vehicleRepository{store: s} }

// Rentals returns the rental repository view over the store.
func (s *Store) Rentals() booking.RentalRepository { return &rentalRepository{store: s} }

// Reservations returns the reservation repository view over the store.
func (s *Store) Reservations() booking.ReservationRepository { return &reservationRepository{store: s} }

// resolveID applies the id policy to an explicit id against the ids already
// in use, or allocates max + 1 when the record carries no id.
func resolveID(requested int64, taken map[int64]bool, maxID int64, policy IDPolicy) (int64, error) {
	if requested <= 0 {
		return maxID + 1, nil
	}
	if !taken[requested] {
		return requested, nil
	}
	if policy == IDReject {
		return 0, fmt.Errorf("%w: id %d", apperrors.ErrAlreadyExists, requested)
	}
	return maxID + 1, nil
}
