package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rental-engine/internal/api/handler/dto"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/pkg/apperrors"
)

type ReservationHandler struct {
	service booking.BookingService
	logger  *slog.Logger
}

func NewReservationHandler(s booking.BookingService, l *slog.Logger) *ReservationHandler {
	if s == nil {
		panic("booking service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ReservationHandler{
		service: s,
		logger:  l.With("component", "ReservationHandler"),
	}
}

func getReservationIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "reservationID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: reservationID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid reservationID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateReservation handles POST /reservations.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create reservation request")

	var req dto.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	res, err := req.ToDomain()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateReservation(r.Context(), res)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrVehicleUnavailable) || errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to create reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewReservationResponse(created)
	h.logger.InfoContext(r.Context(), "Reservation created successfully", slog.String("reservationID", resp.ReservationID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetReservation handles GET /reservations/{reservationID}.
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getReservationIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	res, err := h.service.GetReservation(r.Context(), reservationID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewReservationResponse(res))
}

// ListReservations handles GET /reservations.
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.ListReservations(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list reservations", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewReservationListResponse(reservations))
}

// GetReservationStatus handles GET /reservations/{reservationID}/status.
func (h *ReservationHandler) GetReservationStatus(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getReservationIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	status, err := h.service.ReservationStatus(r.Context(), reservationID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ReservationStatusResponse{
		ReservationID: strconv.FormatInt(reservationID, 10),
		Status:        string(status),
	})
}

// CancelReservation handles POST /reservations/{reservationID}/cancel.
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getReservationIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.CancelReservation(r.Context(), reservationID); err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrReservationCancelled) || errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to cancel reservation", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cancelled, err := h.service.GetReservation(r.Context(), reservationID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Reservation cancelled", slog.Int64("reservationID", reservationID))
	respondJSON(w, http.StatusOK, dto.NewReservationResponse(cancelled))
}
