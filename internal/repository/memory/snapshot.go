package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/customer"
	"rental-engine/internal/domain/vehicle"
	"rental-engine/internal/pkg/apperrors"
)

// Snapshot records keep the wire shape of the persisted lists stable
// independently of the domain structs. Rentals and reservations embed a full
// copy of their vehicle and customer; on load only the ids are kept, the
// canonical records live in their own lists.
const dateLayout = "2006-01-02"

type customerRecord struct {
	CustomerID       int64  `json:"customerId"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	Address          string `json:"address"`
	Type             string `json:"type"`
	RegistrationDate string `json:"registrationDate"`
	ActiveStatus     bool   `json:"activeStatus"`
}

type vehicleRecord struct {
	VehicleID          int64   `json:"vehicleId"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	Year               int     `json:"year"`
	RegistrationNumber string  `json:"registrationNumber"`
	Type               string  `json:"type"`
	DailyRate          float64 `json:"dailyRate"`
	Mileage            int64   `json:"mileage"`
	Location           string  `json:"location"`
	Availability       bool    `json:"availability"`
	Status             string  `json:"status"`
}

type rentalRecord struct {
	RentalID         int64          `json:"rentalId"`
	Vehicle          vehicleRecord  `json:"vehicle"`
	Customer         customerRecord `json:"customer"`
	RentalDate       string         `json:"rentalDate"`
	ReturnDate       string         `json:"returnDate"`
	ActualReturnDate string         `json:"actualReturnDate,omitempty"`
	OverdueDays      int            `json:"overdueDays"`
	RentalFee        float64        `json:"rentalFee"`
	Status           string         `json:"status"`
}

type reservationRecord struct {
	ReservationID   int64          `json:"reservationId"`
	Vehicle         vehicleRecord  `json:"vehicle"`
	Customer        customerRecord `json:"customer"`
	ReservationDate string         `json:"reservationDate"`
	Status          string         `json:"status"`
}

func customerToRecord(c *customer.Customer) customerRecord {
	return customerRecord{
		CustomerID:       c.CustomerID,
		FullName:         c.FullName,
		Email:            c.Email,
		PhoneNumber:      c.PhoneNumber,
		Address:          c.Address,
		Type:             c.Type,
		RegistrationDate: c.RegistrationDate.Format(time.RFC3339),
		ActiveStatus:     c.ActiveStatus,
	}
}

func customerFromRecord(rec customerRecord) (*customer.Customer, error) {
	registered, err := time.Parse(time.RFC3339, rec.RegistrationDate)
	if err != nil {
		return nil, fmt.Errorf("customer %d: bad registrationDate %q: %w", rec.CustomerID, rec.RegistrationDate, err)
	}
	return &customer.Customer{
		CustomerID:       rec.CustomerID,
		FullName:         rec.FullName,
		Email:            rec.Email,
		PhoneNumber:      rec.PhoneNumber,
		Address:          rec.Address,
		Type:             rec.Type,
		RegistrationDate: registered,
		ActiveStatus:     rec.ActiveStatus,
	}, nil
}

func vehicleToRecord(v *vehicle.Vehicle) vehicleRecord {
	return vehicleRecord{
		VehicleID:          v.VehicleID,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		RegistrationNumber: v.RegistrationNumber,
		Type:               v.Type,
		DailyRate:          v.DailyRate.InexactFloat64(),
		Mileage:            v.Mileage,
		Location:           v.Location,
		Availability:       v.Availability,
		Status:             string(v.Status),
	}
}

func vehicleFromRecord(rec vehicleRecord) *vehicle.Vehicle {
	return &vehicle.Vehicle{
		VehicleID:          rec.VehicleID,
		Make:               rec.Make,
		Model:              rec.Model,
		Year:               rec.Year,
		RegistrationNumber: rec.RegistrationNumber,
		Type:               rec.Type,
		DailyRate:          decimal.NewFromFloat(rec.DailyRate),
		Mileage:            rec.Mileage,
		Location:           rec.Location,
		Availability:       rec.Availability,
		Status:             vehicle.Status(rec.Status),
	}
}

func rentalFromRecord(rec rentalRecord) (*booking.RentalTransaction, error) {
	rentalDate, err := time.Parse(dateLayout, rec.RentalDate)
	if err != nil {
		return nil, fmt.Errorf("rental %d: bad rentalDate %q: %w", rec.RentalID, rec.RentalDate, err)
	}
	returnDate, err := time.Parse(dateLayout, rec.ReturnDate)
	if err != nil {
		return nil, fmt.Errorf("rental %d: bad returnDate %q: %w", rec.RentalID, rec.ReturnDate, err)
	}
	rental := &booking.RentalTransaction{
		RentalID:    rec.RentalID,
		VehicleID:   rec.Vehicle.VehicleID,
		CustomerID:  rec.Customer.CustomerID,
		RentalDate:  rentalDate,
		ReturnDate:  returnDate,
		OverdueDays: rec.OverdueDays,
		RentalFee:   decimal.NewFromFloat(rec.RentalFee),
		Status:      booking.RentalStatus(rec.Status),
	}
	if rec.ActualReturnDate != "" {
		actual, err := time.Parse(dateLayout, rec.ActualReturnDate)
		if err != nil {
			return nil, fmt.Errorf("rental %d: bad actualReturnDate %q: %w", rec.RentalID, rec.ActualReturnDate, err)
		}
		rental.ActualReturnDate = &actual
	}
	return rental, nil
}

func reservationFromRecord(rec reservationRecord) (*booking.Reservation, error) {
	reserved, err := time.Parse(dateLayout, rec.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("reservation %d: bad reservationDate %q: %w", rec.ReservationID, rec.ReservationDate, err)
	}
	return &booking.Reservation{
		ReservationID:   rec.ReservationID,
		VehicleID:       rec.Vehicle.VehicleID,
		CustomerID:      rec.Customer.CustomerID,
		ReservationDate: reserved,
		Status:          booking.ReservationStatus(rec.Status),
	}, nil
}

func decodeCustomers(data []byte) ([]*customer.Customer, error) {
	var records []customerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	customers := make([]*customer.Customer, 0, len(records))
	for _, rec := range records {
		c, err := customerFromRecord(rec)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func decodeVehicles(data []byte) ([]*vehicle.Vehicle, error) {
	var records []vehicleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	vehicles := make([]*vehicle.Vehicle, 0, len(records))
	for _, rec := range records {
		vehicles = append(vehicles, vehicleFromRecord(rec))
	}
	return vehicles, nil
}

func decodeRentals(data []byte) ([]*booking.RentalTransaction, error) {
	var records []rentalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	rentals := make([]*booking.RentalTransaction, 0, len(records))
	for _, rec := range records {
		rental, err := rentalFromRecord(rec)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, nil
}

func decodeReservations(data []byte) ([]*booking.Reservation, error) {
	var records []reservationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	reservations := make([]*booking.Reservation, 0, len(records))
	for _, rec := range records {
		res, err := reservationFromRecord(rec)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

// The encode helpers below run with the store's lock held so the embedded
// vehicle and customer copies are consistent with the canonical lists.

func (s *Store) vehicleRecordByID(vehicleID int64) vehicleRecord {
	for _, v := range s.vehicles {
		if v.VehicleID == vehicleID {
			return vehicleToRecord(v)
		}
	}
	return vehicleRecord{VehicleID: vehicleID}
}

func (s *Store) customerRecordByID(customerID int64) customerRecord {
	for _, c := range s.customers {
		if c.CustomerID == customerID {
			return customerToRecord(c)
		}
	}
	return customerRecord{CustomerID: customerID}
}

func (s *Store) encodeCustomers() ([]byte, error) {
	records := make([]customerRecord, 0, len(s.customers))
	for _, c := range s.customers {
		records = append(records, customerToRecord(c))
	}
	return json.Marshal(records)
}

func (s *Store) encodeVehicles() ([]byte, error) {
	records := make([]vehicleRecord, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		records = append(records, vehicleToRecord(v))
	}
	return json.Marshal(records)
}

func (s *Store) encodeRentals() ([]byte, error) {
	records := make([]rentalRecord, 0, len(s.rentals))
	for _, r := range s.rentals {
		rec := rentalRecord{
			RentalID:    r.RentalID,
			Vehicle:     s.vehicleRecordByID(r.VehicleID),
			Customer:    s.customerRecordByID(r.CustomerID),
			RentalDate:  r.RentalDate.Format(dateLayout),
			ReturnDate:  r.ReturnDate.Format(dateLayout),
			OverdueDays: r.OverdueDays,
			RentalFee:   r.RentalFee.InexactFloat64(),
			Status:      string(r.Status),
		}
		if r.ActualReturnDate != nil {
			rec.ActualReturnDate = r.ActualReturnDate.Format(dateLayout)
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

func (s *Store) encodeReservations() ([]byte, error) {
	records := make([]reservationRecord, 0, len(s.reservations))
	for _, r := range s.reservations {
		records = append(records, reservationRecord{
			ReservationID:   r.ReservationID,
			Vehicle:         s.vehicleRecordByID(r.VehicleID),
			Customer:        s.customerRecordByID(r.CustomerID),
			ReservationDate: r.ReservationDate.Format(dateLayout),
			Status:          string(r.Status),
		})
	}
	return json.Marshal(records)
}

// persist writes the snapshot for one key. Called with the lock held.
func (s *Store) persist(ctx context.Context, key string, encode func() ([]byte, error)) error {
	data, err := encode()
	if err != nil {
		return apperrors.WrapStorageError(err, fmt.Sprintf("failed to encode snapshot %q", key))
	}
	if err := s.snapshots.Save(ctx, key, data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist snapshot", slog.String("key", key), slog.Any("error", err))
		return fmt.Errorf("failed to persist snapshot %q: %w", key, err)
	}
	return nil
}
