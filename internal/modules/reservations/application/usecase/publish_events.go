package usecase

import (
	"context"
	"errors"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/domain"
)

// EventFanOut delivers every event to all of its publishers. A failing
// publisher does not stop the others; their errors are joined.
type EventFanOut struct {
	publishers []port.EventPublisher
}

func NewEventFanOut(publishers ...port.EventPublisher) *EventFanOut {
	active := make([]port.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			active = append(active, p)
		}
	}
	return &EventFanOut{publishers: active}
}

func (f *EventFanOut) PublishReservationEvent(ctx context.Context, event domain.ReservationEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishReservationEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
