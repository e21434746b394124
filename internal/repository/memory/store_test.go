package memory

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/customer"
	"rental-engine/internal/domain/vehicle"
	"rental-engine/internal/infrastructure/storage"
	"rental-engine/internal/pkg/apperrors"
)

// fakeSnapshotStore keeps snapshots in a map, standing in for the file or
// postgres backend.
type fakeSnapshotStore struct {
	data map[string][]byte
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{data: make(map[string][]byte)}
}

func (f *fakeSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakeSnapshotStore) Save(_ context.Context, key string, data []byte) error {
	f.data[key] = data
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVehicle(make, model string) *vehicle.Vehicle {
	return vehicle.NewVehicle(make, model, 2022, "REG-1", "Sedan", decimal.NewFromInt(100), 10000, "Downtown")
}

func testCustomer(name string) *customer.Customer {
	return customer.NewCustomer(name, name+"@email.com", "1234", "1 Street", "Private")
}

func TestStore_IDAllocation(t *testing.T) {
	ctx := context.Background()

	t.Run("Sequential Ids From One", func(t *testing.T) {
		store := NewStore(newFakeSnapshotStore(), testLogger())
		repo := store.Customers()

		for i := 0; i < 3; i++ {
			c := testCustomer("Customer")
			require.NoError(t, repo.Add(ctx, c))
			assert.Equal(t, int64(i+1), c.CustomerID)
		}
	})

	t.Run("Explicit Free Id Is Honored", func(t *testing.T) {
		store := NewStore(newFakeSnapshotStore(), testLogger())
		repo := store.Vehicles()

		v := testVehicle("Toyota", "Corolla")
		v.VehicleID = 7
		require.NoError(t, repo.Add(ctx, v))
		assert.Equal(t, int64(7), v.VehicleID)

		// Allocation continues from the max.
		next := testVehicle("Honda", "Civic")
		require.NoError(t, repo.Add(ctx, next))
		assert.Equal(t, int64(8), next.VehicleID)
	})

	t.Run("Colliding Id Is Reassigned To Max Plus One", func(t *testing.T) {
		store := NewStore(newFakeSnapshotStore(), testLogger())
		repo := store.Customers()

		first := testCustomer("First")
		require.NoError(t, repo.Add(ctx, first))
		require.Equal(t, int64(1), first.CustomerID)

		second := testCustomer("Second")
		second.CustomerID = 1
		require.NoError(t, repo.Add(ctx, second))
		assert.Equal(t, int64(2), second.CustomerID)

		kept, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "First", kept.FullName)
	})

	t.Run("Reject Policy Fails Colliding Id", func(t *testing.T) {
		store := NewStore(newFakeSnapshotStore(), testLogger(), WithIDPolicy(IDReject))
		repo := store.Customers()

		first := testCustomer("First")
		require.NoError(t, repo.Add(ctx, first))

		second := testCustomer("Second")
		second.CustomerID = first.CustomerID
		err := repo.Add(ctx, second)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		all, _ := repo.FindAll(ctx)
		assert.Len(t, all, 1)
	})
}

func TestStore_FindAllPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshotStore(), testLogger())
	repo := store.Vehicles()

	models := []string{"Corolla", "Civic", "Model 3"}
	for _, m := range models {
		require.NoError(t, repo.Add(ctx, testVehicle("Make", m)))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(models))
	for i, v := range all {
		assert.Equal(t, models[i], v.Model)
	}
}

func TestStore_SearchVehicles(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshotStore(), testLogger())
	repo := store.Vehicles()

	require.NoError(t, repo.Add(ctx, testVehicle("Toyota", "Corolla")))
	require.NoError(t, repo.Add(ctx, testVehicle("Toyota", "Camry")))
	require.NoError(t, repo.Add(ctx, testVehicle("Honda", "Civic")))

	t.Run("Matches Are Case Insensitive And Keep Insertion Order", func(t *testing.T) {
		found, err := repo.Search(ctx, vehicle.Filter{Make: "toyota"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Corolla", found[0].Model)
		assert.Equal(t, "Camry", found[1].Model)
	})

	t.Run("Empty Filter Matches All", func(t *testing.T) {
		found, err := repo.Search(ctx, vehicle.Filter{})
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("No Match Returns Empty Slice", func(t *testing.T) {
		found, err := repo.Search(ctx, vehicle.Filter{Make: "Tesla"})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshotStore(), testLogger())
	repo := store.Vehicles()

	v := testVehicle("Toyota", "Corolla")
	require.NoError(t, repo.Add(ctx, v))

	found, err := repo.FindByID(ctx, v.VehicleID)
	require.NoError(t, err)
	found.Model = "scribbled"

	again, err := repo.FindByID(ctx, v.VehicleID)
	require.NoError(t, err)
	assert.Equal(t, "Corolla", again.Model)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Update Missing Record", func(t *testing.T) {
		store := NewStore(newFakeSnapshotStore(), testLogger())

		v := testVehicle("Toyota", "Corolla")
		v.VehicleID = 42
		err := store.Vehicles().Update(ctx, v)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Delete Removes Record", func(t *testing.T) {
		store := NewStore(newFakeSnapshotStore(), testLogger())
		repo := store.Vehicles()

		v := testVehicle("Toyota", "Corolla")
		require.NoError(t, repo.Add(ctx, v))
		require.NoError(t, repo.Delete(ctx, v.VehicleID))

		_, err := repo.FindByID(ctx, v.VehicleID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, v.VehicleID), apperrors.ErrNotFound)
	})
}

func TestStore_FindActiveByVehicle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeSnapshotStore(), testLogger())
	repo := store.Rentals()

	closedReturn := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	closed := &booking.RentalTransaction{
		VehicleID:        1,
		CustomerID:       1,
		RentalDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:       time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		ActualReturnDate: &closedReturn,
		RentalFee:        decimal.NewFromInt(400),
		Status:           booking.RentalStatusReturned,
	}
	require.NoError(t, repo.Add(ctx, closed))

	active := &booking.RentalTransaction{
		VehicleID:  1,
		CustomerID: 2,
		RentalDate: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		RentalFee:  decimal.NewFromInt(200),
		Status:     booking.RentalStatusRented,
	}
	require.NoError(t, repo.Add(ctx, active))

	found, err := repo.FindActiveByVehicle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, active.RentalID, found.RentalID)

	_, err = repo.FindActiveByVehicle(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_SnapshotRoundtrip(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshotStore()
	store := NewStore(snapshots, testLogger())

	c := testCustomer("John Doe")
	require.NoError(t, store.Customers().Add(ctx, c))

	v := testVehicle("Toyota", "Corolla")
	require.NoError(t, store.Vehicles().Add(ctx, v))
	require.NoError(t, v.Commit(vehicle.StatusRented))
	require.NoError(t, store.Vehicles().Update(ctx, v))

	rental := &booking.RentalTransaction{
		VehicleID:  v.VehicleID,
		CustomerID: c.CustomerID,
		RentalDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		RentalFee:  decimal.NewFromInt(200),
		Status:     booking.RentalStatusRented,
	}
	require.NoError(t, store.Rentals().Add(ctx, rental))

	res := &booking.Reservation{
		VehicleID:       v.VehicleID,
		CustomerID:      c.CustomerID,
		ReservationDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:          booking.ReservationStatusReserved,
	}
	require.NoError(t, store.Reservations().Add(ctx, res))

	reloaded := NewStore(snapshots, testLogger())
	require.NoError(t, reloaded.Load(ctx))

	gotCustomer, err := reloaded.Customers().FindByID(ctx, c.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, c.FullName, gotCustomer.FullName)
	assert.True(t, gotCustomer.ActiveStatus)

	gotVehicle, err := reloaded.Vehicles().FindByID(ctx, v.VehicleID)
	require.NoError(t, err)
	assert.Equal(t, vehicle.StatusRented, gotVehicle.Status)
	assert.False(t, gotVehicle.Availability)
	assert.True(t, decimal.NewFromInt(100).Equal(gotVehicle.DailyRate))

	gotRental, err := reloaded.Rentals().FindByID(ctx, rental.RentalID)
	require.NoError(t, err)
	assert.Equal(t, v.VehicleID, gotRental.VehicleID)
	assert.Equal(t, c.CustomerID, gotRental.CustomerID)
	assert.Nil(t, gotRental.ActualReturnDate)
	assert.True(t, rental.RentalDate.Equal(gotRental.RentalDate))
	assert.True(t, decimal.NewFromInt(200).Equal(gotRental.RentalFee))

	gotRes, err := reloaded.Reservations().FindByID(ctx, res.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, booking.ReservationStatusReserved, gotRes.Status)
}

func TestStore_PersistedRentalEmbedsSnapshots(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshotStore()
	store := NewStore(snapshots, testLogger())

	c := testCustomer("John Doe")
	require.NoError(t, store.Customers().Add(ctx, c))
	v := testVehicle("Toyota", "Corolla")
	require.NoError(t, store.Vehicles().Add(ctx, v))

	rental := &booking.RentalTransaction{
		VehicleID:  v.VehicleID,
		CustomerID: c.CustomerID,
		RentalDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		RentalFee:  decimal.NewFromInt(200),
		Status:     booking.RentalStatusRented,
	}
	require.NoError(t, store.Rentals().Add(ctx, rental))

	var records []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(snapshots.data[storage.KeyRentals], &records))
	require.Len(t, records, 1)

	var embedded struct {
		Make  string `json:"make"`
		Model string `json:"model"`
	}
	require.NoError(t, json.Unmarshal(records[0]["vehicle"], &embedded))
	assert.Equal(t, "Toyota", embedded.Make)
	assert.Equal(t, "Corolla", embedded.Model)

	var owner struct {
		FullName string `json:"fullName"`
	}
	require.NoError(t, json.Unmarshal(records[0]["customer"], &owner))
	assert.Equal(t, "John Doe", owner.FullName)
}

func TestStore_LoadCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := newFakeSnapshotStore()
	snapshots.data[storage.KeyVehicles] = []byte("{not json")

	store := NewStore(snapshots, testLogger())
	err := store.Load(ctx)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
}
