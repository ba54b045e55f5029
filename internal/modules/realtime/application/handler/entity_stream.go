package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"bookingHub/internal/modules/realtime/application/usecase"
	reservations "bookingHub/internal/modules/reservations/domain"
	"bookingHub/internal/platform/broker"
)

// EventRelayHandler replays reservation events read from Kafka onto the
// local websocket hub, so clients of every instance see every change.
type EventRelayHandler struct {
	kafkaTopic  string
	broadcastUC *usecase.BroadcastUseCase
}

var _ broker.TopicHandler = (*EventRelayHandler)(nil)

func NewEventRelayHandler(kafkaTopic string, broadcastUC *usecase.BroadcastUseCase) *EventRelayHandler {
	return &EventRelayHandler{kafkaTopic: kafkaTopic, broadcastUC: broadcastUC}
}

func (h *EventRelayHandler) Topic() string { return h.kafkaTopic }

func (h *EventRelayHandler) Handle(ctx context.Context, delivery broker.Delivery) error {
	var event reservations.ReservationEvent
	if err := json.Unmarshal(delivery.Value, &event); err != nil {
		return fmt.Errorf("decode reservation event at offset %d: %w", delivery.Offset, err)
	}
	if event.Action == "" {
		slog.Debug("relay skipped event without action", slog.Int64("offset", delivery.Offset))
		return nil
	}
	return h.broadcastUC.PublishReservationEvent(ctx, event)
}
