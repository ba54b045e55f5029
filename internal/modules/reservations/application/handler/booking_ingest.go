package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/application/usecase"
	"bookingHub/internal/modules/reservations/domain"
	"bookingHub/internal/platform/broker"
	"bookingHub/internal/shared/normalization"
)

// ErrPayloadNotObject is returned when a delivery does not decode to a JSON object.
var ErrPayloadNotObject = errors.New("booking payload must be a JSON object")

// BookingIngestHandler submits booking payloads published by channel
// partners on a Kafka topic. Rejected payloads are reported as
// reservations.rejected events.
type BookingIngestHandler struct {
	topic     string
	submit    *usecase.SubmitBookingUseCase
	publisher port.EventPublisher
}

var _ broker.TopicHandler = (*BookingIngestHandler)(nil)

func NewBookingIngestHandler(topic string, submit *usecase.SubmitBookingUseCase, publisher port.EventPublisher) *BookingIngestHandler {
	return &BookingIngestHandler{topic: topic, submit: submit, publisher: publisher}
}

func (h *BookingIngestHandler) Topic() string { return h.topic }

func (h *BookingIngestHandler) Handle(ctx context.Context, delivery broker.Delivery) error {
	raw, err := decodeBooking(delivery.Value)
	if err != nil {
		h.reject(ctx, delivery, "", string(delivery.Key), err)
		return err
	}

	format := domain.DetectFormat(raw)
	result, err := h.submit.Execute(ctx, raw)
	if err != nil {
		h.reject(ctx, delivery, format, string(delivery.Key), err)
		return fmt.Errorf("ingest booking from %s@%d: %w", delivery.Topic, delivery.Offset, err)
	}

	slog.Info("booking ingested",
		slog.String("topic", delivery.Topic),
		slog.Int64("offset", delivery.Offset),
		slog.String("reservationCode", result.Reservation.ReservationCode),
		slog.Bool("created", result.Created),
		slog.String("format", string(result.Format)),
	)
	return nil
}

func (h *BookingIngestHandler) reject(ctx context.Context, delivery broker.Delivery, format domain.PayloadFormat, code string, reason error) {
	slog.Warn("booking rejected",
		slog.String("topic", delivery.Topic),
		slog.Int("partition", delivery.Partition),
		slog.Int64("offset", delivery.Offset),
		slog.String("reason", reason.Error()),
	)
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishReservationEvent(ctx, domain.NewRejectedEvent(format, code, reason)); err != nil {
		slog.Warn("rejection event publish failed", slog.Any("error", err))
	}
}

func decodeBooking(value []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(value))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode booking payload: %w", err)
	}
	raw := normalization.MapFromPayload(payload)
	if raw == nil {
		return nil, ErrPayloadNotObject
	}
	return raw, nil
}
