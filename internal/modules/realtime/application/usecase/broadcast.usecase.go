package usecase

import (
	"context"

	"bookingHub/internal/modules/realtime/application/port"
	"bookingHub/internal/modules/realtime/domain"
	reservations "bookingHub/internal/modules/reservations/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	uc.broadcaster.Broadcast(ctx, msg)
}

// PublishReservationEvent forwards a reservation event to the feed clients
// subscribed to its topic.
func (uc *BroadcastUseCase) PublishReservationEvent(ctx context.Context, event reservations.ReservationEvent) error {
	uc.Execute(ctx, MessageFromReservationEvent(event))
	return nil
}

// MessageFromReservationEvent wraps event for the websocket feed.
func MessageFromReservationEvent(event reservations.ReservationEvent) *domain.Message {
	return &domain.Message{
		Topic:      event.Topic(),
		Entity:     domain.ReservationEntity,
		Action:     string(event.Action),
		ResourceID: event.Code,
		Metadata: map[string]string{
			domain.MetadataReservationCode: event.Code,
			"eventId":                      event.ID.String(),
			"format":                       string(event.Format),
		},
		Data:      event,
		Timestamp: event.OccurredAt,
	}
}
