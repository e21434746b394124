package vehicle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"rental-engine/internal/pkg/apperrors"
)

type VehicleService interface {
	AddVehicle(ctx context.Context, v *Vehicle) (*Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID int64) (*Vehicle, error)
	ListVehicles(ctx context.Context) ([]*Vehicle, error)
	SearchVehicles(ctx context.Context, filter Filter) ([]*Vehicle, error)
	UpdateVehicle(ctx context.Context, v *Vehicle) error
	RemoveVehicle(ctx context.Context, vehicleID int64) error
}

var _ VehicleService = (*vehicleService)(nil)

type vehicleService struct {
	// mu is the shared command lock. Fleet edits are read-modify-write over
	// a cloned record, so they must not interleave with a booking commit or
	// release that lands on the same vehicle.
	mu *sync.Mutex

	repo   Repository
	logger *slog.Logger
}

func NewVehicleService(repo Repository, commands *sync.Mutex, logger *slog.Logger) VehicleService {
	if repo == nil {
		panic("vehicle repository cannot be nil")
	}
	if commands == nil {
		commands = &sync.Mutex{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewVehicleService, using default stderr handler")
	}
	return &vehicleService{
		mu:     commands,
		repo:   repo,
		logger: logger.With(slog.String("component", "vehicleService")),
	}
}

func (s *vehicleService) AddVehicle(ctx context.Context, v *Vehicle) (*Vehicle, error) {
	s.logger.InfoContext(ctx, "Attempting to add vehicle")

	if v == nil {
		return nil, fmt.Errorf("%w: vehicle cannot be nil", apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(v.Make) == "" {
		s.logger.WarnContext(ctx, "Validation failed: make is empty")
		return nil, apperrors.NewValidationError("make", "cannot be empty")
	}
	if strings.TrimSpace(v.Model) == "" {
		s.logger.WarnContext(ctx, "Validation failed: model is empty")
		return nil, apperrors.NewValidationError("model", "cannot be empty")
	}
	if v.DailyRate.IsNegative() {
		s.logger.WarnContext(ctx, "Validation failed: negative daily rate")
		return nil, apperrors.NewValidationError("dailyRate", "must be non-negative")
	}

	// New vehicles always start bookable.
	v.Release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Add(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to add vehicle", slog.Any("error", err))
		return nil, fmt.Errorf("failed to add vehicle: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully added vehicle", slog.Int64("vehicleID", v.VehicleID))
	return v, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, vehicleID int64) (*Vehicle, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Vehicle not found", slog.Int64("vehicleID", vehicleID))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding vehicle", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get vehicle %d: %w", vehicleID, err)
	}
	return v, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]*Vehicle, error) {
	vehicles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing vehicles", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *vehicleService) SearchVehicles(ctx context.Context, filter Filter) ([]*Vehicle, error) {
	vehicles, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error searching vehicles", slog.Any("error", err))
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, v *Vehicle) error {
	s.logger.InfoContext(ctx, "Attempting to update vehicle")

	if v == nil {
		return fmt.Errorf("%w: vehicle cannot be nil", apperrors.ErrInvalidArgument)
	}
	if v.DailyRate.IsNegative() {
		s.logger.WarnContext(ctx, "Validation failed: negative daily rate")
		return apperrors.NewValidationError("dailyRate", "must be non-negative")
	}

	// The lookup and the write-back are one critical section; a booking
	// committing this vehicle in between would otherwise be overwritten by
	// the stale clone.
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.FindByID(ctx, v.VehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Vehicle not found for update", slog.Int64("vehicleID", v.VehicleID))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error finding vehicle for update", slog.Any("error", err))
		return fmt.Errorf("cannot find vehicle %d to update: %w", v.VehicleID, err)
	}

	existing.ApplyUpdate(v)
	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated vehicle", slog.Any("error", err))
		return fmt.Errorf("failed to update vehicle %d: %w", v.VehicleID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated vehicle", slog.Int64("vehicleID", v.VehicleID))
	return nil
}

func (s *vehicleService) RemoveVehicle(ctx context.Context, vehicleID int64) error {
	s.logger.InfoContext(ctx, "Attempting to remove vehicle", slog.Int64("vehicleID", vehicleID))

	// Availability check and delete are one critical section so a vehicle
	// cannot be committed between them.
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Vehicle not found for removal", slog.Int64("vehicleID", vehicleID))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error finding vehicle for removal", slog.Any("error", err))
		return fmt.Errorf("cannot find vehicle %d to remove: %w", vehicleID, err)
	}

	if !v.IsAvailable() {
		s.logger.WarnContext(ctx, "Refusing to remove committed vehicle",
			slog.Int64("vehicleID", vehicleID), slog.String("status", string(v.Status)))
		return fmt.Errorf("%w: vehicle %d is %s", apperrors.ErrVehicleCommitted, vehicleID, v.Status)
	}

	if err := s.repo.Delete(ctx, vehicleID); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to delete vehicle", slog.Any("error", err))
		return fmt.Errorf("failed to remove vehicle %d: %w", vehicleID, err)
	}

	s.logger.InfoContext(ctx, "Successfully removed vehicle", slog.Int64("vehicleID", vehicleID))
	return nil
}
