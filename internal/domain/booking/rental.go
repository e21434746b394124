package booking

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusRented   RentalStatus = "Rented"
	RentalStatusOverdue  RentalStatus = "Overdue"
	RentalStatusReturned RentalStatus = "Returned"
)

// RentalTransaction references its vehicle and customer by id; both resolve
// through the repository at use sites.
type RentalTransaction struct {
	RentalID         int64           `json:"rentalId"`
	VehicleID        int64           `json:"vehicleId"`
	CustomerID       int64           `json:"customerId"`
	RentalDate       time.Time       `json:"rentalDate"`
	ReturnDate       time.Time       `json:"returnDate"`
	ActualReturnDate *time.Time      `json:"actualReturnDate,omitempty"`
	OverdueDays      int             `json:"overdueDays"`
	RentalFee        decimal.Decimal `json:"rentalFee"`
	Status           RentalStatus    `json:"status"`
}

// Active reports whether the rental still holds its vehicle.
func (r *RentalTransaction) Active() bool {
	return r.Status == RentalStatusRented || r.Status == RentalStatusOverdue
}

// overdueSurchargeRate is the per-overdue-day surcharge, a fraction of the
// daily rate added on top of the base fee.
var overdueSurchargeRate = decimal.NewFromFloat(0.2)

// RentalDays counts billable days between start and end, rounding partial
// days up. Same-day rentals bill one day.
func RentalDays(start, end time.Time) int64 {
	days := int64(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// DaysOverdue counts whole days past the planned return, rounding partial
// days up. Zero when now is not past plannedReturn.
func DaysOverdue(plannedReturn, now time.Time) int {
	if !now.After(plannedReturn) {
		return 0
	}
	return int(math.Ceil(now.Sub(plannedReturn).Hours() / 24))
}

// CalculateFee computes the rental fee: billable days times the daily rate,
// plus a 20%-of-daily-rate surcharge per overdue day. The end of the billed
// period is the actual return date when set, the planned return otherwise.
func CalculateFee(r *RentalTransaction, dailyRate decimal.Decimal) decimal.Decimal {
	end := r.ReturnDate
	if r.ActualReturnDate != nil {
		end = *r.ActualReturnDate
	}

	total := dailyRate.Mul(decimal.NewFromInt(RentalDays(r.RentalDate, end)))
	if r.OverdueDays > 0 {
		surcharge := dailyRate.Mul(overdueSurchargeRate).Mul(decimal.NewFromInt(int64(r.OverdueDays)))
		total = total.Add(surcharge)
	}
	return total
}
