package vehicle

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Add(ctx context.Context, v *Vehicle) error {
	ret := _m.Called(ctx, v)
	return ret.Error(0)
}

func (_m *MockRepository) Update(ctx context.Context, v *Vehicle) error {
	ret := _m.Called(ctx, v)
	return ret.Error(0)
}

func (_m *MockRepository) FindByID(ctx context.Context, vehicleID int64) (*Vehicle, error) {
	ret := _m.Called(ctx, vehicleID)

	var r0 *Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) FindAll(ctx context.Context) ([]*Vehicle, error) {
	ret := _m.Called(ctx)

	var r0 []*Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) Search(ctx context.Context, filter Filter) ([]*Vehicle, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*Vehicle
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Vehicle)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) Delete(ctx context.Context, vehicleID int64) error {
	ret := _m.Called(ctx, vehicleID)
	return ret.Error(0)
}
