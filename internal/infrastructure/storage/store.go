package storage

import "context"

// Snapshot keys, one logical record per entity kind.
const (
	KeyCustomers    = "customer_list"
	KeyVehicles     = "vehicle_list"
	KeyRentals      = "rental_list"
	KeyReservations = "reservation_list"
)

// SnapshotStore persists opaque JSON snapshots keyed by entity kind. Load
// returns (nil, nil) when no snapshot exists for the key yet. Save overwrites
// the previous snapshot for the key in full.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
