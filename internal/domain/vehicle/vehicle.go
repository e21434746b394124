package vehicle

import (
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable Status = "Available"
	StatusRented    Status = "Rented"
	StatusReserved  Status = "Reserved"
)

// Vehicle carries one booking-state pair: Availability must equal
// (Status == StatusAvailable) at all times. Every state transition goes
// through Commit/Release so the pair is never half-updated.
type Vehicle struct {
	VehicleID          int64           `json:"vehicleId"`
	Make               string          `json:"make"`
	Model              string          `json:"model"`
	Year               int             `json:"year"`
	RegistrationNumber string          `json:"registrationNumber"`
	Type               string          `json:"type"`
	DailyRate          decimal.Decimal `json:"dailyRate"`
	Mileage            int64           `json:"mileage"`
	Location           string          `json:"location"`
	Availability       bool            `json:"availability"`
	Status             Status          `json:"status"`
}

func NewVehicle(make, model string, year int, registrationNumber, vehicleType string, dailyRate decimal.Decimal, mileage int64, location string) *Vehicle {
	return &Vehicle{
		Make:               make,
		Model:              model,
		Year:               year,
		RegistrationNumber: registrationNumber,
		Type:               vehicleType,
		DailyRate:          dailyRate,
		Mileage:            mileage,
		Location:           location,
		Availability:       true,
		Status:             StatusAvailable,
	}
}

// ApplyUpdate copies the attribute fields from src. Availability and status
// belong to the booking workflow and are deliberately left alone.
func (v *Vehicle) ApplyUpdate(src *Vehicle) {
	v.Make = src.Make
	v.Model = src.Model
	v.Year = src.Year
	v.RegistrationNumber = src.RegistrationNumber
	v.Type = src.Type
	v.DailyRate = src.DailyRate
	v.Mileage = src.Mileage
	v.Location = src.Location
}
