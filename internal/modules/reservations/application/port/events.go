package port

import (
	"context"

	"bookingHub/internal/modules/reservations/domain"
)

// EventPublisher delivers reservation events to an outside audience.
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, event domain.ReservationEvent) error
}
