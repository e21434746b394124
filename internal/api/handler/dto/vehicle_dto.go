package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"rental-engine/internal/domain/vehicle"
)

type AddVehicleRequest struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	RegistrationNumber string `json:"registrationNumber"`
	Type               string `json:"type"`
	DailyRate          string `json:"dailyRate"`
	Mileage            int64  `json:"mileage"`
	Location           string `json:"location"`
}

func (r *AddVehicleRequest) Validate() error {
	if strings.TrimSpace(r.Make) == "" {
		return fmt.Errorf("make cannot be empty")
	}
	if strings.TrimSpace(r.Model) == "" {
		return fmt.Errorf("model cannot be empty")
	}
	rate, err := decimal.NewFromString(r.DailyRate)
	if err != nil {
		return fmt.Errorf("dailyRate must be a decimal number")
	}
	if rate.IsNegative() || rate.IsZero() {
		return fmt.Errorf("dailyRate must be positive")
	}
	return nil
}

func (r *AddVehicleRequest) ToDomain() (*vehicle.Vehicle, error) {
	rate, err := decimal.NewFromString(r.DailyRate)
	if err != nil {
		return nil, fmt.Errorf("dailyRate must be a decimal number")
	}
	return vehicle.NewVehicle(r.Make, r.Model, r.Year, r.RegistrationNumber, r.Type, rate, r.Mileage, r.Location), nil
}

type UpdateVehicleRequest struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	RegistrationNumber string `json:"registrationNumber"`
	Type               string `json:"type"`
	DailyRate          string `json:"dailyRate"`
	Mileage            int64  `json:"mileage"`
	Location           string `json:"location"`
}

func (r *UpdateVehicleRequest) Validate() error {
	req := AddVehicleRequest(*r)
	return req.Validate()
}

func (r *UpdateVehicleRequest) ToDomain(vehicleID int64) (*vehicle.Vehicle, error) {
	req := AddVehicleRequest(*r)
	v, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	v.VehicleID = vehicleID
	return v, nil
}

type VehicleResponse struct {
	VehicleID          string `json:"vehicleId"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	RegistrationNumber string `json:"registrationNumber"`
	Type               string `json:"type"`
	DailyRate          string `json:"dailyRate"`
	Mileage            int64  `json:"mileage"`
	Location           string `json:"location"`
	Available          bool   `json:"available"`
	Status             string `json:"status"`
}

func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	if v == nil {
		return VehicleResponse{}
	}

	return VehicleResponse{
		VehicleID:          strconv.FormatInt(v.VehicleID, 10),
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		RegistrationNumber: v.RegistrationNumber,
		Type:               v.Type,
		DailyRate:          v.DailyRate.StringFixed(2),
		Mileage:            v.Mileage,
		Location:           v.Location,
		Available:          v.Availability,
		Status:             string(v.Status),
	}
}

func NewVehicleListResponse(vehicles []*vehicle.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, NewVehicleResponse(v))
	}
	return responses
}
