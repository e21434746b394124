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
	"rental-engine/internal/domain/vehicle"
	"rental-engine/internal/pkg/apperrors"
)

type VehicleHandler struct {
	service        vehicle.VehicleService
	bookingService booking.BookingService
	logger         *slog.Logger
}

func NewVehicleHandler(s vehicle.VehicleService, bookingSvc booking.BookingService, l *slog.Logger) *VehicleHandler {
	if s == nil || bookingSvc == nil {
		panic("vehicle handler services cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &VehicleHandler{
		service:        s,
		bookingService: bookingSvc,
		logger:         l.With("component", "VehicleHandler"),
	}
}

func getVehicleIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "vehicleID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: vehicleID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid vehicleID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// AddVehicle handles POST /vehicles.
func (h *VehicleHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received add vehicle request")

	var req dto.AddVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	v, err := req.ToDomain()
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	added, err := h.service.AddVehicle(r.Context(), v)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to add vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewVehicleResponse(added)
	h.logger.InfoContext(r.Context(), "Vehicle added successfully", slog.String("vehicleID", resp.VehicleID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetVehicle handles GET /vehicles/{vehicleID}.
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getVehicleIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	v, err := h.service.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewVehicleResponse(v))
}

// ListVehicles handles GET /vehicles. Filter query parameters narrow the
// result; without them the full fleet is returned.
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	filter := vehicle.Filter{
		Type:     r.URL.Query().Get("type"),
		Make:     r.URL.Query().Get("make"),
		Model:    r.URL.Query().Get("model"),
		Location: r.URL.Query().Get("location"),
	}

	var (
		vehicles []*vehicle.Vehicle
		err      error
	)
	if filter == (vehicle.Filter{}) {
		vehicles, err = h.service.ListVehicles(r.Context())
	} else {
		vehicles, err = h.service.SearchVehicles(r.Context(), filter)
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list vehicles", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewVehicleListResponse(vehicles))
}

// UpdateVehicle handles PUT /vehicles/{vehicleID}.
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getVehicleIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	v, err := req.ToDomain(vehicleID)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.UpdateVehicle(r.Context(), v); err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to update vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	updated, err := h.service.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Vehicle updated successfully", slog.Int64("vehicleID", vehicleID))
	respondJSON(w, http.StatusOK, dto.NewVehicleResponse(updated))
}

// RemoveVehicle handles DELETE /vehicles/{vehicleID}.
func (h *VehicleHandler) RemoveVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getVehicleIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.RemoveVehicle(r.Context(), vehicleID); err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to remove vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Vehicle removed", slog.Int64("vehicleID", vehicleID))
	w.WriteHeader(http.StatusNoContent)
}

// GetActiveRental handles GET /vehicles/{vehicleID}/rental, resolving the
// rental currently holding the vehicle.
func (h *VehicleHandler) GetActiveRental(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getVehicleIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	rental, err := h.bookingService.FindActiveRental(r.Context(), vehicleID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to find active rental", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewRentalResponse(rental))
}
