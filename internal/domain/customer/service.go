package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"rental-engine/internal/pkg/apperrors"
)

type CustomerService interface {
	RegisterCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, cust *Customer) error
	DeactivateCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	logger *slog.Logger
}

func NewCustomerService(repo Repository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) RegisterCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to register new customer")

	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	cust.FullName = strings.TrimSpace(cust.FullName)
	if cust.FullName == "" {
		s.logger.WarnContext(ctx, "Validation failed: full name is empty")
		return nil, apperrors.NewValidationError("fullName", "cannot be empty")
	}
	if strings.TrimSpace(cust.Email) == "" {
		s.logger.WarnContext(ctx, "Validation failed: email is empty", slog.String("fullName", cust.FullName))
		return nil, apperrors.NewValidationError("email", "cannot be empty")
	}
	if cust.RegistrationDate.IsZero() {
		cust.RegistrationDate = time.Now()
	}
	cust.ActiveStatus = true

	if err := s.repo.Add(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to add new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully registered customer", slog.Int64("customerID", cust.CustomerID))
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}
	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, cust *Customer) error {
	s.logger.InfoContext(ctx, "Attempting to update customer")

	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	cust.FullName = strings.TrimSpace(cust.FullName)
	if cust.FullName == "" {
		s.logger.WarnContext(ctx, "Validation failed: full name is empty")
		return apperrors.NewValidationError("fullName", "cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, cust.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for update", slog.Int64("customerID", cust.CustomerID))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return fmt.Errorf("cannot find customer %d to update: %w", cust.CustomerID, err)
	}

	existing.ApplyUpdate(cust)
	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %d: %w", cust.CustomerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated customer", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (s *customerService) DeactivateCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to deactivate customer", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for deactivation", slog.Int64("customerID", customerID))
			return err
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for deactivation", slog.Any("error", err))
		return fmt.Errorf("cannot find customer %d to deactivate: %w", customerID, err)
	}

	if !cust.ActiveStatus {
		s.logger.InfoContext(ctx, "Customer already inactive, nothing to do", slog.Int64("customerID", customerID))
		return nil
	}

	cust.Deactivate()
	if err := s.repo.Update(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save deactivated customer", slog.Any("error", err))
		return fmt.Errorf("failed to deactivate customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deactivated customer", slog.Int64("customerID", customerID))
	return nil
}
