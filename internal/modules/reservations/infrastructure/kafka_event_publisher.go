package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/domain"
)

// MessagePublisher writes a keyed message to a broker topic.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// KafkaEventPublisher encodes reservation events as JSON keyed by
// reservation code, so every change to one booking stays ordered.
type KafkaEventPublisher struct {
	producer MessagePublisher
}

var _ port.EventPublisher = (*KafkaEventPublisher)(nil)

func NewKafkaEventPublisher(producer MessagePublisher) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer}
}

func (p *KafkaEventPublisher) PublishReservationEvent(ctx context.Context, event domain.ReservationEvent) error {
	ctx, span := tracer.Start(ctx, "PublishReservationEvent")
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		err = fmt.Errorf("encode reservation event: %w", err)
		recordSpanError(span, err)
		return err
	}
	headers := map[string]string{
		"event-id":     event.ID.String(),
		"event-topic":  event.Topic(),
		"event-format": string(event.Format),
	}
	if err := p.producer.Publish(ctx, event.Code, payload, headers); err != nil {
		recordSpanError(span, err)
		return err
	}
	return nil
}
