package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rental-engine/internal/api/handler"
	"rental-engine/internal/api/handler/dto"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/pkg/apperrors"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateRental(ctx context.Context, rental *booking.RentalTransaction) (*booking.RentalTransaction, error) {
	args := m.Called(ctx, rental)
	if created, ok := args.Get(0).(*booking.RentalTransaction); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) CloseRental(ctx context.Context, rentalID int64, actualReturnDate time.Time, fee decimal.Decimal) error {
	args := m.Called(ctx, rentalID, actualReturnDate, fee)
	return args.Error(0)
}

func (m *MockBookingService) GetRental(ctx context.Context, rentalID int64) (*booking.RentalTransaction, error) {
	args := m.Called(ctx, rentalID)
	if rental, ok := args.Get(0).(*booking.RentalTransaction); ok {
		return rental, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) ListRentals(ctx context.Context) ([]*booking.RentalTransaction, error) {
	args := m.Called(ctx)
	if rentals, ok := args.Get(0).([]*booking.RentalTransaction); ok {
		return rentals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) FindActiveRental(ctx context.Context, vehicleID int64) (*booking.RentalTransaction, error) {
	args := m.Called(ctx, vehicleID)
	if rental, ok := args.Get(0).(*booking.RentalTransaction); ok {
		return rental, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) QuoteFee(ctx context.Context, rentalID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, rentalID)
	if fee, ok := args.Get(0).(decimal.Decimal); ok {
		return fee, args.Error(1)
	}
	return decimal.Zero, args.Error(1)
}

func (m *MockBookingService) CreateReservation(ctx context.Context, res *booking.Reservation) (*booking.Reservation, error) {
	args := m.Called(ctx, res)
	if created, ok := args.Get(0).(*booking.Reservation); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) CancelReservation(ctx context.Context, reservationID int64) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

func (m *MockBookingService) GetReservation(ctx context.Context, reservationID int64) (*booking.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if res, ok := args.Get(0).(*booking.Reservation); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) ReservationStatus(ctx context.Context, reservationID int64) (booking.ReservationStatus, error) {
	args := m.Called(ctx, reservationID)
	if status, ok := args.Get(0).(booking.ReservationStatus); ok {
		return status, args.Error(1)
	}
	return "", args.Error(1)
}

func (m *MockBookingService) ListReservations(ctx context.Context) ([]*booking.Reservation, error) {
	args := m.Called(ctx)
	if reservations, ok := args.Get(0).([]*booking.Reservation); ok {
		return reservations, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) SweepOverdue(ctx context.Context, now time.Time) (booking.SweepReport, error) {
	args := m.Called(ctx, now)
	if report, ok := args.Get(0).(booking.SweepReport); ok {
		return report, args.Error(1)
	}
	return booking.SweepReport{}, args.Error(1)
}

func rentalRouter(svc booking.BookingService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewRentalHandler(svc, logger)

	router := chi.NewRouter()
	router.Post("/rentals", h.CreateRental)
	router.Get("/rentals/{rentalID}", h.GetRental)
	router.Post("/rentals/{rentalID}/return", h.CloseRental)
	router.Get("/rentals/{rentalID}/fee", h.QuoteFee)
	return router
}

func TestRentalHandler_CreateRental(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockBookingService)
		created := &booking.RentalTransaction{
			RentalID:   1,
			VehicleID:  2,
			CustomerID: 3,
			RentalDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			ReturnDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			RentalFee:  decimal.NewFromInt(200),
			Status:     booking.RentalStatusRented,
		}
		svc.On("CreateRental", mock.Anything, mock.AnythingOfType("*booking.RentalTransaction")).Return(created, nil).Once()

		body := bytes.NewBufferString(`{"vehicleId":2,"customerId":3,"rentalDate":"2026-03-01","returnDate":"2026-03-03"}`)
		req := httptest.NewRequest(http.MethodPost, "/rentals", body)
		rec := httptest.NewRecorder()
		rentalRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp dto.RentalResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "1", resp.RentalID)
		assert.Equal(t, "200.00", resp.RentalFee)
		assert.Equal(t, "Rented", resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("Conflict When Vehicle Unavailable", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CreateRental", mock.Anything, mock.Anything).Return(nil, apperrors.ErrVehicleUnavailable).Once()

		body := bytes.NewBufferString(`{"vehicleId":2,"customerId":3,"rentalDate":"2026-03-01","returnDate":"2026-03-03"}`)
		req := httptest.NewRequest(http.MethodPost, "/rentals", body)
		rec := httptest.NewRecorder()
		rentalRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Bad Request On Malformed Date", func(t *testing.T) {
		svc := new(MockBookingService)

		body := bytes.NewBufferString(`{"vehicleId":2,"customerId":3,"rentalDate":"01/03/2026","returnDate":"2026-03-03"}`)
		req := httptest.NewRequest(http.MethodPost, "/rentals", body)
		rec := httptest.NewRecorder()
		rentalRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CreateRental", mock.Anything, mock.Anything)
	})
}

func TestRentalHandler_CloseRental(t *testing.T) {
	t.Run("Closed", func(t *testing.T) {
		svc := new(MockBookingService)
		actual := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
		closed := &booking.RentalTransaction{
			RentalID:         1,
			VehicleID:        2,
			CustomerID:       3,
			RentalDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			ReturnDate:       time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			ActualReturnDate: &actual,
			RentalFee:        decimal.NewFromInt(200),
			Status:           booking.RentalStatusReturned,
		}
		svc.On("CloseRental", mock.Anything, int64(1), actual, mock.MatchedBy(func(fee decimal.Decimal) bool {
			return decimal.NewFromInt(200).Equal(fee)
		})).Return(nil).Once()
		svc.On("GetRental", mock.Anything, int64(1)).Return(closed, nil).Once()

		body := bytes.NewBufferString(`{"actualReturnDate":"2026-03-03","fee":"200"}`)
		req := httptest.NewRequest(http.MethodPost, "/rentals/1/return", body)
		rec := httptest.NewRecorder()
		rentalRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp dto.RentalResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Returned", resp.Status)
		assert.Equal(t, "2026-03-03", resp.ActualReturnDate)
		svc.AssertExpectations(t)
	})

	t.Run("Conflict On Second Close", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CloseRental", mock.Anything, int64(1), mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: rental 1", apperrors.ErrRentalClosed)).Once()

		body := bytes.NewBufferString(`{"actualReturnDate":"2026-03-05","fee":"999"}`)
		req := httptest.NewRequest(http.MethodPost, "/rentals/1/return", body)
		rec := httptest.NewRecorder()
		rentalRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRentalHandler_GetRental(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("GetRental", mock.Anything, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/rentals/404", nil)
		rec := httptest.NewRecorder()
		rentalRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Bad Id", func(t *testing.T) {
		svc := new(MockBookingService)

		req := httptest.NewRequest(http.MethodGet, "/rentals/abc", nil)
		rec := httptest.NewRecorder()
		rentalRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRentalHandler_QuoteFee(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("QuoteFee", mock.Anything, int64(1)).Return(decimal.NewFromInt(240), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/rentals/1/fee", nil)
	rec := httptest.NewRecorder()
	rentalRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "240.00", resp.Fee)
}
