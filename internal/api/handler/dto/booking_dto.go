package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"rental-engine/internal/domain/booking"
)

type CreateRentalRequest struct {
	VehicleID  int64  `json:"vehicleId"`
	CustomerID int64  `json:"customerId"`
	RentalDate string `json:"rentalDate"`
	ReturnDate string `json:"returnDate"`
}

func (r *CreateRentalRequest) Validate() error {
	if r.VehicleID <= 0 {
		return fmt.Errorf("vehicleId must be a positive number")
	}
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId must be a positive number")
	}
	if _, err := time.Parse(DateLayout, r.RentalDate); err != nil {
		return fmt.Errorf("rentalDate must be a %s date", DateLayout)
	}
	if _, err := time.Parse(DateLayout, r.ReturnDate); err != nil {
		return fmt.Errorf("returnDate must be a %s date", DateLayout)
	}
	return nil
}

func (r *CreateRentalRequest) ToDomain() (*booking.RentalTransaction, error) {
	rentalDate, err := time.Parse(DateLayout, r.RentalDate)
	if err != nil {
		return nil, fmt.Errorf("rentalDate must be a %s date", DateLayout)
	}
	returnDate, err := time.Parse(DateLayout, r.ReturnDate)
	if err != nil {
		return nil, fmt.Errorf("returnDate must be a %s date", DateLayout)
	}
	return &booking.RentalTransaction{
		VehicleID:  r.VehicleID,
		CustomerID: r.CustomerID,
		RentalDate: rentalDate,
		ReturnDate: returnDate,
	}, nil
}

type CloseRentalRequest struct {
	ActualReturnDate string `json:"actualReturnDate"`
	Fee              string `json:"fee"`
}

func (r *CloseRentalRequest) Validate() error {
	if _, err := time.Parse(DateLayout, r.ActualReturnDate); err != nil {
		return fmt.Errorf("actualReturnDate must be a %s date", DateLayout)
	}
	fee, err := decimal.NewFromString(r.Fee)
	if err != nil {
		return fmt.Errorf("fee must be a decimal number")
	}
	if fee.IsNegative() {
		return fmt.Errorf("fee must be non-negative")
	}
	return nil
}

type RentalResponse struct {
	RentalID         string `json:"rentalId"`
	VehicleID        string `json:"vehicleId"`
	CustomerID       string `json:"customerId"`
	RentalDate       string `json:"rentalDate"`
	ReturnDate       string `json:"returnDate"`
	ActualReturnDate string `json:"actualReturnDate,omitempty"`
	OverdueDays      int    `json:"overdueDays"`
	RentalFee        string `json:"rentalFee"`
	Status           string `json:"status"`
}

func NewRentalResponse(rental *booking.RentalTransaction) RentalResponse {
	if rental == nil {
		return RentalResponse{}
	}

	resp := RentalResponse{
		RentalID:    strconv.FormatInt(rental.RentalID, 10),
		VehicleID:   strconv.FormatInt(rental.VehicleID, 10),
		CustomerID:  strconv.FormatInt(rental.CustomerID, 10),
		RentalDate:  rental.RentalDate.Format(DateLayout),
		ReturnDate:  rental.ReturnDate.Format(DateLayout),
		OverdueDays: rental.OverdueDays,
		RentalFee:   rental.RentalFee.StringFixed(2),
		Status:      string(rental.Status),
	}
	if rental.ActualReturnDate != nil {
		resp.ActualReturnDate = rental.ActualReturnDate.Format(DateLayout)
	}
	return resp
}

func NewRentalListResponse(rentals []*booking.RentalTransaction) []RentalResponse {
	responses := make([]RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		responses = append(responses, NewRentalResponse(rental))
	}
	return responses
}

type FeeResponse struct {
	RentalID string `json:"rentalId"`
	Fee      string `json:"fee"`
}

type CreateReservationRequest struct {
	VehicleID       int64  `json:"vehicleId"`
	CustomerID      int64  `json:"customerId"`
	ReservationDate string `json:"reservationDate"`
}

func (r *CreateReservationRequest) Validate() error {
	if r.VehicleID <= 0 {
		return fmt.Errorf("vehicleId must be a positive number")
	}
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId must be a positive number")
	}
	if _, err := time.Parse(DateLayout, r.ReservationDate); err != nil {
		return fmt.Errorf("reservationDate must be a %s date", DateLayout)
	}
	return nil
}

func (r *CreateReservationRequest) ToDomain() (*booking.Reservation, error) {
	reservationDate, err := time.Parse(DateLayout, r.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("reservationDate must be a %s date", DateLayout)
	}
	return &booking.Reservation{
		VehicleID:       r.VehicleID,
		CustomerID:      r.CustomerID,
		ReservationDate: reservationDate,
	}, nil
}

type ReservationResponse struct {
	ReservationID   string `json:"reservationId"`
	VehicleID       string `json:"vehicleId"`
	CustomerID      string `json:"customerId"`
	ReservationDate string `json:"reservationDate"`
	Status          string `json:"status"`
}

func NewReservationResponse(res *booking.Reservation) ReservationResponse {
	if res == nil {
		return ReservationResponse{}
	}

	return ReservationResponse{
		ReservationID:   strconv.FormatInt(res.ReservationID, 10),
		VehicleID:       strconv.FormatInt(res.VehicleID, 10),
		CustomerID:      strconv.FormatInt(res.CustomerID, 10),
		ReservationDate: res.ReservationDate.Format(DateLayout),
		Status:          string(res.Status),
	}
}

func NewReservationListResponse(reservations []*booking.Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		responses = append(responses, NewReservationResponse(res))
	}
	return responses
}

type ReservationStatusResponse struct {
	ReservationID string `json:"reservationId"`
	Status        string `json:"status"`
}
