package event

import "context"

type Publisher interface {
	PublishRentalCreated(ctx context.Context, event RentalEvent) error
	PublishRentalOverdue(ctx context.Context, event RentalEvent) error
	PublishRentalReturned(ctx context.Context, event RentalEvent) error
	PublishReservationCreated(ctx context.Context, event ReservationEvent) error
	PublishReservationCancelled(ctx context.Context, event ReservationEvent) error
}

// NoopPublisher is used when no message broker is configured.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (*NoopPublisher) PublishRentalCreated(context.Context, RentalEvent) error  { return nil }
func (*NoopPublisher) PublishRentalOverdue(context.Context, RentalEvent) error  { return nil }
func (*NoopPublisher) PublishRentalReturned(context.Context, RentalEvent) error { return nil }
func (*NoopPublisher) PublishReservationCreated(context.Context, ReservationEvent) error {
	return nil
}
func (*NoopPublisher) PublishReservationCancelled(context.Context, ReservationEvent) error {
	return nil
}
