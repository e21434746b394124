package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rental-engine/internal/domain/booking"
	"rental-engine/internal/infrastructure/monitoring"
)

// OverdueSweepJob runs the periodic overdue sweep over the rental list. The
// scheduler guarantees at most one run at a time; the booking service's own
// lock additionally fences the sweep off against concurrent bookings.
type OverdueSweepJob struct {
	bookingService booking.BookingService
	logger         *slog.Logger
}

func NewOverdueSweepJob(bookingSvc booking.BookingService, logger *slog.Logger) *OverdueSweepJob {
	if bookingSvc == nil || logger == nil {
		panic("OverdueSweepJob dependencies cannot be nil")
	}
	return &OverdueSweepJob{
		bookingService: bookingSvc,
		logger:         logger.With("job", "OverdueSweep"),
	}
}

func (j *OverdueSweepJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting overdue rental sweep job.")

	report, err := j.bookingService.SweepOverdue(ctx, time.Now())
	duration := time.Since(startTime)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue sweep aborted.", slog.Any("error", err), slog.Duration("duration", duration))
		monitoring.RecordSweep(duration, 1)
		return fmt.Errorf("cannot run job, sweep failed: %w", err)
	}

	monitoring.RecordSweep(duration, report.Errors)

	summaryLog := j.logger.With(
		slog.Duration("duration", duration),
		slog.Int("rentals_scanned", report.Scanned),
		slog.Int("rentals_marked_overdue", report.MarkedOverdue),
		slog.Int("rentals_recomputed", report.Recomputed),
		slog.Int("errors_encountered", report.Errors),
	)
	if report.Errors > 0 {
		summaryLog.WarnContext(ctx, "Overdue rental sweep job finished with errors.")
		return fmt.Errorf("job completed with %d errors", report.Errors)
	}
	summaryLog.InfoContext(ctx, "Overdue rental sweep job finished successfully.")
	return nil
}
