package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int64
	}{
		{"Two full days", day(1), day(3), 2},
		{"Same day bills one day", day(1), day(1), 1},
		{"Partial day rounds up", day(1), day(1).Add(6 * time.Hour), 1},
		{"One day plus an hour rounds to two", day(1), day(2).Add(time.Hour), 2},
		{"End before start clamps to one", day(3), day(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.start, tt.end))
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	planned := day(10)

	assert.Equal(t, 0, DaysOverdue(planned, day(9)))
	assert.Equal(t, 0, DaysOverdue(planned, planned))
	assert.Equal(t, 1, DaysOverdue(planned, planned.Add(time.Hour)))
	assert.Equal(t, 3, DaysOverdue(planned, day(13)))
}

func TestCalculateFee(t *testing.T) {
	rate := decimal.NewFromInt(100)

	t.Run("Planned fee for two days", func(t *testing.T) {
		r := &RentalTransaction{RentalDate: day(1), ReturnDate: day(3)}

		fee := CalculateFee(r, rate)

		assert.True(t, decimal.NewFromInt(200).Equal(fee), "got %s", fee)
	})

	t.Run("Same-day rental bills one day", func(t *testing.T) {
		r := &RentalTransaction{RentalDate: day(1), ReturnDate: day(1)}

		fee := CalculateFee(r, rate)

		assert.True(t, decimal.NewFromInt(100).Equal(fee), "got %s", fee)
	})

	t.Run("Actual return date takes precedence", func(t *testing.T) {
		actual := day(5)
		r := &RentalTransaction{RentalDate: day(1), ReturnDate: day(3), ActualReturnDate: &actual}

		fee := CalculateFee(r, rate)

		assert.True(t, decimal.NewFromInt(400).Equal(fee), "got %s", fee)
	})

	t.Run("Overdue surcharge is 20 percent of the rate per day", func(t *testing.T) {
		r := &RentalTransaction{RentalDate: day(1), ReturnDate: day(3), OverdueDays: 2}

		fee := CalculateFee(r, rate)

		// 2 days * 100 + 2 overdue days * 100 * 0.2
		assert.True(t, decimal.NewFromInt(240).Equal(fee), "got %s", fee)
	})

	t.Run("Fee is monotonic in the actual return date", func(t *testing.T) {
		early := day(3)
		late := day(6)
		rEarly := &RentalTransaction{RentalDate: day(1), ReturnDate: day(3), ActualReturnDate: &early}
		rLate := &RentalTransaction{RentalDate: day(1), ReturnDate: day(3), ActualReturnDate: &late}

		assert.True(t, CalculateFee(rLate, rate).GreaterThanOrEqual(CalculateFee(rEarly, rate)))
	})

	t.Run("Fee is never negative", func(t *testing.T) {
		r := &RentalTransaction{RentalDate: day(5), ReturnDate: day(1)}

		fee := CalculateFee(r, decimal.Zero)

		assert.False(t, fee.IsNegative())
	})
}

func TestRentalActive(t *testing.T) {
	assert.True(t, (&RentalTransaction{Status: RentalStatusRented}).Active())
	assert.True(t, (&RentalTransaction{Status: RentalStatusOverdue}).Active())
	assert.False(t, (&RentalTransaction{Status: RentalStatusReturned}).Active())
}

func TestReservationActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: ReservationStatusReserved}).Active())
	assert.False(t, (&Reservation{Status: ReservationStatusCancelled}).Active())
}
