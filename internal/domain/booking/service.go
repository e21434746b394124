package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"rental-engine/internal/domain/customer"
	"rental-engine/internal/domain/vehicle"
	"rental-engine/internal/event"
	"rental-engine/internal/infrastructure/monitoring"
	"rental-engine/internal/pkg/apperrors"
)

type BookingService interface {
	CreateRental(ctx context.Context, rental *RentalTransaction) (*RentalTransaction, error)
	CloseRental(ctx context.Context, rentalID int64, actualReturnDate time.Time, fee decimal.Decimal) error
	GetRental(ctx context.Context, rentalID int64) (*RentalTransaction, error)
	ListRentals(ctx context.Context) ([]*RentalTransaction, error)
	FindActiveRental(ctx context.Context, vehicleID int64) (*RentalTransaction, error)
	QuoteFee(ctx context.Context, rentalID int64) (decimal.Decimal, error)

	CreateReservation(ctx context.Context, res *Reservation) (*Reservation, error)
	CancelReservation(ctx context.Context, reservationID int64) error
	GetReservation(ctx context.Context, reservationID int64) (*Reservation, error)
	ReservationStatus(ctx context.Context, reservationID int64) (ReservationStatus, error)
	ListReservations(ctx context.Context) ([]*Reservation, error)

	// SweepOverdue reclassifies active rentals past their planned return and
	// recomputes their fees. It is invoked by the overdue monitor.
	SweepOverdue(ctx context.Context, now time.Time) (SweepReport, error)
}

type SweepReport struct {
	Scanned       int
	MarkedOverdue int
	Recomputed    int
	Errors        int
}

var _ BookingService = (*bookingService)(nil)

type bookingService struct {
	// mu serializes mutating commands against the overdue sweep so a tick
	// never observes a half-applied booking. It is shared with the vehicle
	// service so fleet edits cannot interleave with a commit or release.
	mu *sync.Mutex

	rentals      RentalRepository
	reservations ReservationRepository
	vehicles     vehicle.Repository
	customers    customer.Repository
	pub          event.Publisher
	logger       *slog.Logger
}

func NewBookingService(
	rentals RentalRepository,
	reservations ReservationRepository,
	vehicles vehicle.Repository,
	customers customer.Repository,
	pub event.Publisher,
	commands *sync.Mutex,
	logger *slog.Logger,
) BookingService {
	if rentals == nil || reservations == nil || vehicles == nil || customers == nil {
		panic("booking service repositories cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher()
	}
	if commands == nil {
		commands = &sync.Mutex{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewBookingService, using default stderr handler")
	}
	return &bookingService{
		mu:           commands,
		rentals:      rentals,
		reservations: reservations,
		vehicles:     vehicles,
		customers:    customers,
		pub:          pub,
		logger:       logger.With(slog.String("component", "bookingService")),
	}
}

func (s *bookingService) CreateRental(ctx context.Context, rental *RentalTransaction) (*RentalTransaction, error) {
	s.logger.InfoContext(ctx, "Attempting to create rental")

	if rental == nil {
		return nil, fmt.Errorf("%w: rental cannot be nil", apperrors.ErrInvalidArgument)
	}
	if rental.VehicleID <= 0 {
		return nil, apperrors.NewValidationError("vehicleId", "must reference a vehicle")
	}
	if rental.CustomerID <= 0 {
		return nil, apperrors.NewValidationError("customerId", "must reference a customer")
	}
	if rental.RentalDate.IsZero() || rental.ReturnDate.IsZero() {
		return nil, apperrors.NewValidationError("rentalDate", "rental and return dates are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.customers.FindByID(ctx, rental.CustomerID); err != nil {
		s.logger.WarnContext(ctx, "Customer lookup failed for rental", slog.Int64("customerID", rental.CustomerID), slog.Any("error", err))
		return nil, fmt.Errorf("customer %d: %w", rental.CustomerID, err)
	}

	v, err := s.vehicles.FindByID(ctx, rental.VehicleID)
	if err != nil {
		s.logger.WarnContext(ctx, "Vehicle lookup failed for rental", slog.Int64("vehicleID", rental.VehicleID), slog.Any("error", err))
		return nil, fmt.Errorf("vehicle %d: %w", rental.VehicleID, err)
	}

	// Availability check and commit are one step under the lock; no second
	// booking can slip in between.
	if err := v.Commit(vehicle.StatusRented); err != nil {
		s.logger.WarnContext(ctx, "Vehicle cannot be rented",
			slog.Int64("vehicleID", v.VehicleID), slog.String("status", string(v.Status)))
		monitoring.RecordBookingConflict()
		return nil, err
	}
	if err := s.vehicles.Update(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist vehicle commitment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to commit vehicle %d: %w", v.VehicleID, err)
	}

	rental.Status = RentalStatusRented
	rental.ActualReturnDate = nil
	rental.OverdueDays = 0
	rental.RentalFee = CalculateFee(rental, v.DailyRate)

	if err := s.rentals.Add(ctx, rental); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append rental, releasing vehicle", slog.Any("error", err))
		v.Release()
		if relErr := s.vehicles.Update(ctx, v); relErr != nil {
			s.logger.ErrorContext(ctx, "Failed to release vehicle after rental append failure", slog.Any("error", relErr))
		}
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}

	monitoring.RecordRentalCreated()
	s.publishRentalEvent(ctx, rental, s.pub.PublishRentalCreated)
	s.logger.InfoContext(ctx, "Successfully created rental",
		slog.Int64("rentalID", rental.RentalID), slog.Int64("vehicleID", rental.VehicleID))
	return rental, nil
}

func (s *bookingService) CloseRental(ctx context.Context, rentalID int64, actualReturnDate time.Time, fee decimal.Decimal) error {
	s.logger.InfoContext(ctx, "Attempting to close rental", slog.Int64("rentalID", rentalID))

	if actualReturnDate.IsZero() {
		return apperrors.NewValidationError("actualReturnDate", "is required")
	}
	if fee.IsNegative() {
		return apperrors.NewValidationError("fee", "must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		s.logger.WarnContext(ctx, "Rental not found for close", slog.Int64("rentalID", rentalID), slog.Any("error", err))
		return err
	}

	// Returned is terminal; a second close must not re-charge.
	if rental.Status == RentalStatusReturned {
		s.logger.WarnContext(ctx, "Rejecting close of already returned rental", slog.Int64("rentalID", rentalID))
		return fmt.Errorf("%w: rental %d", apperrors.ErrRentalClosed, rentalID)
	}

	rental.ActualReturnDate = &actualReturnDate
	rental.RentalFee = fee
	rental.Status = RentalStatusReturned

	if err := s.rentals.Update(ctx, rental); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist closed rental", slog.Any("error", err))
		return fmt.Errorf("failed to close rental %d: %w", rentalID, err)
	}

	// Release unconditionally; the availability invariant guarantees the
	// vehicle cannot have been reserved while rented.
	s.releaseVehicle(ctx, rental.VehicleID)

	monitoring.RecordRentalClosed()
	s.publishRentalEvent(ctx, rental, s.pub.PublishRentalReturned)
	s.logger.InfoContext(ctx, "Successfully closed rental", slog.Int64("rentalID", rentalID))
	return nil
}

func (s *bookingService) GetRental(ctx context.Context, rentalID int64) (*RentalTransaction, error) {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get rental %d: %w", rentalID, err)
	}
	return rental, nil
}

func (s *bookingService) ListRentals(ctx context.Context) ([]*RentalTransaction, error) {
	rentals, err := s.rentals.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return rentals, nil
}

func (s *bookingService) FindActiveRental(ctx context.Context, vehicleID int64) (*RentalTransaction, error) {
	rental, err := s.rentals.FindActiveByVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find active rental for vehicle %d: %w", vehicleID, err)
	}
	return rental, nil
}

func (s *bookingService) QuoteFee(ctx context.Context, rentalID int64) (decimal.Decimal, error) {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := s.vehicles.FindByID(ctx, rental.VehicleID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("vehicle %d: %w", rental.VehicleID, err)
	}
	return CalculateFee(rental, v.DailyRate), nil
}

func (s *bookingService) CreateReservation(ctx context.Context, res *Reservation) (*Reservation, error) {
	s.logger.InfoContext(ctx, "Attempting to create reservation")

	if res == nil {
		return nil, fmt.Errorf("%w: reservation cannot be nil", apperrors.ErrInvalidArgument)
	}
	if res.VehicleID <= 0 {
		return nil, apperrors.NewValidationError("vehicleId", "must reference a vehicle")
	}
	if res.CustomerID <= 0 {
		return nil, apperrors.NewValidationError("customerId", "must reference a customer")
	}
	if res.ReservationDate.IsZero() {
		return nil, apperrors.NewValidationError("reservationDate", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.customers.FindByID(ctx, res.CustomerID); err != nil {
		s.logger.WarnContext(ctx, "Customer lookup failed for reservation", slog.Int64("customerID", res.CustomerID), slog.Any("error", err))
		return nil, fmt.Errorf("customer %d: %w", res.CustomerID, err)
	}

	v, err := s.vehicles.FindByID(ctx, res.VehicleID)
	if err != nil {
		s.logger.WarnContext(ctx, "Vehicle lookup failed for reservation", slog.Int64("vehicleID", res.VehicleID), slog.Any("error", err))
		return nil, fmt.Errorf("vehicle %d: %w", res.VehicleID, err)
	}

	if err := v.Commit(vehicle.StatusReserved); err != nil {
		s.logger.WarnContext(ctx, "Vehicle cannot be reserved",
			slog.Int64("vehicleID", v.VehicleID), slog.String("status", string(v.Status)))
		monitoring.RecordBookingConflict()
		return nil, err
	}
	if err := s.vehicles.Update(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist vehicle commitment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to commit vehicle %d: %w", v.VehicleID, err)
	}

	res.Status = ReservationStatusReserved

	if err := s.reservations.Add(ctx, res); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append reservation, releasing vehicle", slog.Any("error", err))
		v.Release()
		if relErr := s.vehicles.Update(ctx, v); relErr != nil {
			s.logger.ErrorContext(ctx, "Failed to release vehicle after reservation append failure", slog.Any("error", relErr))
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	monitoring.RecordReservationCreated()
	s.publishReservationEvent(ctx, res, s.pub.PublishReservationCreated)
	s.logger.InfoContext(ctx, "Successfully created reservation",
		slog.Int64("reservationID", res.ReservationID), slog.Int64("vehicleID", res.VehicleID))
	return res, nil
}

func (s *bookingService) CancelReservation(ctx context.Context, reservationID int64) error {
	s.logger.InfoContext(ctx, "Attempting to cancel reservation", slog.Int64("reservationID", reservationID))

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		s.logger.WarnContext(ctx, "Reservation not found for cancel", slog.Int64("reservationID", reservationID), slog.Any("error", err))
		return err
	}

	// Cancelled is terminal; a second cancel is rejected rather than
	// silently re-applied.
	if res.Status == ReservationStatusCancelled {
		s.logger.WarnContext(ctx, "Rejecting cancel of already cancelled reservation", slog.Int64("reservationID", reservationID))
		return fmt.Errorf("%w: reservation %d", apperrors.ErrReservationCancelled, reservationID)
	}

	res.Status = ReservationStatusCancelled

	if err := s.reservations.Update(ctx, res); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist cancelled reservation", slog.Any("error", err))
		return fmt.Errorf("failed to cancel reservation %d: %w", reservationID, err)
	}

	s.releaseVehicle(ctx, res.VehicleID)

	monitoring.RecordReservationCancelled()
	s.publishReservationEvent(ctx, res, s.pub.PublishReservationCancelled)
	s.logger.InfoContext(ctx, "Successfully cancelled reservation", slog.Int64("reservationID", reservationID))
	return nil
}

func (s *bookingService) GetReservation(ctx context.Context, reservationID int64) (*Reservation, error) {
	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get reservation %d: %w", reservationID, err)
	}
	return res, nil
}

func (s *bookingService) ReservationStatus(ctx context.Context, reservationID int64) (ReservationStatus, error) {
	res, err := s.GetReservation(ctx, reservationID)
	if err != nil {
		return "", err
	}
	return res.Status, nil
}

func (s *bookingService) ListReservations(ctx context.Context) ([]*Reservation, error) {
	reservations, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *bookingService) SweepOverdue(ctx context.Context, now time.Time) (SweepReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report SweepReport

	rentals, err := s.rentals.FindAll(ctx)
	if err != nil {
		return report, fmt.Errorf("cannot sweep, failed to list rentals: %w", err)
	}

	for _, rental := range rentals {
		switch {
		case rental.Status == RentalStatusRented && now.After(rental.ReturnDate):
			report.Scanned++
			if err := s.markOverdue(ctx, rental, now); err != nil {
				s.logger.ErrorContext(ctx, "Failed to mark rental overdue",
					slog.Int64("rentalID", rental.RentalID), slog.Any("error", err))
				report.Errors++
				continue
			}
			report.MarkedOverdue++
			s.publishRentalEvent(ctx, rental, s.pub.PublishRentalOverdue)

		case rental.Status == RentalStatusOverdue:
			report.Scanned++
			if err := s.recomputeOverdue(ctx, rental, now); err != nil {
				s.logger.ErrorContext(ctx, "Failed to recompute overdue rental",
					slog.Int64("rentalID", rental.RentalID), slog.Any("error", err))
				report.Errors++
				continue
			}
			report.Recomputed++
		}
	}

	monitoring.RecordMarkedOverdue(report.MarkedOverdue)
	return report, nil
}

func (s *bookingService) markOverdue(ctx context.Context, rental *RentalTransaction, now time.Time) error {
	v, err := s.vehicles.FindByID(ctx, rental.VehicleID)
	if err != nil {
		return fmt.Errorf("vehicle %d: %w", rental.VehicleID, err)
	}

	rental.Status = RentalStatusOverdue
	rental.OverdueDays = DaysOverdue(rental.ReturnDate, now)
	rental.RentalFee = CalculateFee(rental, v.DailyRate)

	return s.rentals.Update(ctx, rental)
}

func (s *bookingService) recomputeOverdue(ctx context.Context, rental *RentalTransaction, now time.Time) error {
	v, err := s.vehicles.FindByID(ctx, rental.VehicleID)
	if err != nil {
		return fmt.Errorf("vehicle %d: %w", rental.VehicleID, err)
	}

	rental.OverdueDays = DaysOverdue(rental.ReturnDate, now)
	rental.RentalFee = CalculateFee(rental, v.DailyRate)

	return s.rentals.Update(ctx, rental)
}

func (s *bookingService) releaseVehicle(ctx context.Context, vehicleID int64) {
	v, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		s.logger.WarnContext(ctx, "Vehicle missing on release", slog.Int64("vehicleID", vehicleID), slog.Any("error", err))
		return
	}
	v.Release()
	if err := s.vehicles.Update(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist vehicle release", slog.Int64("vehicleID", vehicleID), slog.Any("error", err))
	}
}

func (s *bookingService) publishRentalEvent(ctx context.Context, rental *RentalTransaction, publish func(context.Context, event.RentalEvent) error) {
	evt := event.RentalEvent{
		RentalID:    rental.RentalID,
		VehicleID:   rental.VehicleID,
		CustomerID:  rental.CustomerID,
		Status:      string(rental.Status),
		OverdueDays: rental.OverdueDays,
		RentalFee:   rental.RentalFee.String(),
		Timestamp:   time.Now(),
	}
	if err := publish(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish rental event", slog.Any("error", err))
	}
}

func (s *bookingService) publishReservationEvent(ctx context.Context, res *Reservation, publish func(context.Context, event.ReservationEvent) error) {
	evt := event.ReservationEvent{
		ReservationID: res.ReservationID,
		VehicleID:     res.VehicleID,
		CustomerID:    res.CustomerID,
		Status:        string(res.Status),
		Timestamp:     time.Now(),
	}
	if err := publish(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish reservation event", slog.Any("error", err))
	}
}
