package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rental-engine/internal/api/handler"
	mw "rental-engine/internal/api/middleware"
	"rental-engine/internal/config"
	"rental-engine/internal/domain/booking"
	"rental-engine/internal/domain/customer"
	"rental-engine/internal/domain/vehicle"
)

type Services struct {
	Customers customer.CustomerService
	Vehicles  vehicle.VehicleService
	Bookings  booking.BookingService
}

func SetupRouter(services Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupCustomerRoutes(router, cfg, services.Customers, logger)
	setupVehicleRoutes(router, cfg, services.Vehicles, services.Bookings, logger)
	setupBookingRoutes(router, cfg, services.Bookings, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(*cfg, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(router chi.Router, cfg *config.Config, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.RegisterCustomer)
		r.Get("/", h.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeactivateCustomer)
		})
	})
}

func setupVehicleRoutes(router chi.Router, cfg *config.Config, svc vehicle.VehicleService, bookingSvc booking.BookingService, logger *slog.Logger) {
	h := handler.NewVehicleHandler(svc, bookingSvc, logger)

	router.Route("/vehicles", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.AddVehicle)
		r.Get("/", h.ListVehicles)
		r.Route("/{vehicleID}", func(r chi.Router) {
			r.Get("/", h.GetVehicle)
			r.Put("/", h.UpdateVehicle)
			r.Delete("/", h.RemoveVehicle)
			r.Get("/rental", h.GetActiveRental)
		})
	})
}

func setupBookingRoutes(router chi.Router, cfg *config.Config, svc booking.BookingService, logger *slog.Logger) {
	rentalHandler := handler.NewRentalHandler(svc, logger)
	reservationHandler := handler.NewReservationHandler(svc, logger)

	router.Route("/rentals", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", rentalHandler.CreateRental)
		r.Get("/", rentalHandler.ListRentals)
		r.Route("/{rentalID}", func(r chi.Router) {
			r.Get("/", rentalHandler.GetRental)
			r.Post("/return", rentalHandler.CloseRental)
			r.Get("/fee", rentalHandler.QuoteFee)
		})
	})

	router.Route("/reservations", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", reservationHandler.CreateReservation)
		r.Get("/", reservationHandler.ListReservations)
		r.Route("/{reservationID}", func(r chi.Router) {
			r.Get("/", reservationHandler.GetReservation)
			r.Get("/status", reservationHandler.GetReservationStatus)
			r.Post("/cancel", reservationHandler.CancelReservation)
		})
	})
}
