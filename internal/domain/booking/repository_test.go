package booking

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rental-engine/internal/domain/customer"
	"rental-engine/internal/domain/vehicle"
)

type MockRentalRepository struct {
	mock.Mock
}

func (_m *MockRentalRepository) Add(ctx context.Context, rental *RentalTransaction) error {
	return _m.Called(ctx, rental).Error(0)
}

func (_m *MockRentalRepository) Update(ctx context.Context, rental *RentalTransaction) error {
	return _m.Called(ctx, rental).Error(0)
}

func (_m *MockRentalRepository) FindByID(ctx context.Context, rentalID int64) (*RentalTransaction, error) {
	ret := _m.Called(ctx, rentalID)

	var r0 *RentalTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*RentalTransaction)
	}
	return r0, ret.Error(1)
}

func (_m *MockRentalRepository) FindAll(ctx context.Context) ([]*RentalTransaction, error) {
	ret := _m.Called(ctx)

	var r0 []*RentalTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*RentalTransaction)
	}
	return r0, ret.Error(1)
}

func (_m *MockRentalRepository) FindActiveByVehicle(ctx context.Context, vehicleID int64) (*RentalTransaction, error) {
	ret := _m.Called(ctx, vehicleID)

	var r0 *RentalTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*RentalTransaction)
	}
	return r0, ret.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (_m *MockReservationRepository) Add(ctx context.Context, res *Reservation) error {
	return _m.Called(ctx, res).Error(0)
}

func (_m *MockReservationRepository) Update(ctx context.Context, res *Reservation) error {
	return _m.Called(ctx, res).Error(0)
}

func (_m *MockReservationRepository) FindByID(ctx context.Context, reservationID int64) (*Reservation, error) {
	ret := _m.Called(ctx, reservationID)

	var r0 *Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *MockReservationRepository) FindAll(ctx context.Context) ([]*Reservation, error) {
	ret := _m.Called(ctx)

	var r0 []*Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *MockReservationRepository) FindActiveByVehicle(ctx context.Context, vehicleID int64) (*Reservation, error) {
	ret := _m.Called(ctx, vehicleID)

	var r0 *Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Reservation)
	}
	return r0, ret.Error(1)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (_m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	return _m.Called(ctx, v).Error(0)
}

func (_m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	return _m.Called(ctx, v).Error(0)
}

func (_m *MockVehicleRepository) FindByID(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error) {
	ret := _m.Called(ctx, vehicleID)

	var r0 *vehicle.Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*vehicle.Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) FindAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	ret := _m.Called(ctx)

	var r0 []*vehicle.Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*vehicle.Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) Search(ctx context.Context, filter vehicle.Filter) ([]*vehicle.Vehicle, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*vehicle.Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*vehicle.Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) Delete(ctx context.Context, vehicleID int64) error {
	return _m.Called(ctx, vehicleID).Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) Add(ctx context.Context, cust *customer.Customer) error {
	return _m.Called(ctx, cust).Error(0)
}

func (_m *MockCustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	return _m.Called(ctx, cust).Error(0)
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}
