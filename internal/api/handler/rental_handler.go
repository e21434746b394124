package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"rental-engine/internal/api/handler/dto"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/pkg/apperrors"
)

type RentalHandler struct {
	service booking.BookingService
	logger  *slog.Logger
}

func NewRentalHandler(s booking.BookingService, l *slog.Logger) *RentalHandler {
	if s == nil {
		panic("booking service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &RentalHandler{
		service: s,
		logger:  l.With("component", "RentalHandler"),
	}
}

func getRentalIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "rentalID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: rentalID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid rentalID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateRental handles POST /rentals.
func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create rental request")

	var req dto.CreateRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	rental, err := req.ToDomain()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateRental(r.Context(), rental)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrVehicleUnavailable) || errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to create rental", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewRentalResponse(created)
	h.logger.InfoContext(r.Context(), "Rental created successfully", slog.String("rentalID", resp.RentalID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetRental handles GET /rentals/{rentalID}.
func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := getRentalIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	rental, err := h.service.GetRental(r.Context(), rentalID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get rental", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewRentalResponse(rental))
}

// ListRentals handles GET /rentals.
func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.service.ListRentals(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list rentals", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewRentalListResponse(rentals))
}

// CloseRental handles POST /rentals/{rentalID}/return.
func (h *RentalHandler) CloseRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := getRentalIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.CloseRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	actualReturnDate, _ := time.Parse(dto.DateLayout, req.ActualReturnDate)
	fee, _ := decimal.NewFromString(req.Fee)

	if err := h.service.CloseRental(r.Context(), rentalID, actualReturnDate, fee); err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrRentalClosed) || errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to close rental", slog.Any("error", err))
		respondError(w, err)
		return
	}

	closed, err := h.service.GetRental(r.Context(), rentalID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Rental closed successfully", slog.Int64("rentalID", rentalID))
	respondJSON(w, http.StatusOK, dto.NewRentalResponse(closed))
}

// QuoteFee handles GET /rentals/{rentalID}/fee, computing the fee the rental
// would cost as of its recorded dates.
func (h *RentalHandler) QuoteFee(w http.ResponseWriter, r *http.Request) {
	rentalID, err := getRentalIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	fee, err := h.service.QuoteFee(r.Context(), rentalID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to quote fee", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.FeeResponse{
		RentalID: strconv.FormatInt(rentalID, 10),
		Fee:      fee.StringFixed(2),
	})
}
