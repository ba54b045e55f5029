package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingHub/internal/modules/realtime/application/usecase"
	"bookingHub/internal/modules/realtime/domain"
	reservations "bookingHub/internal/modules/reservations/domain"
	"bookingHub/internal/platform/broker"
)

type capturingBroadcaster struct {
	messages []*domain.Message
}

func (b *capturingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.messages = append(b.messages, msg)
}

func TestEventRelayBroadcastsDecodedEvent(t *testing.T) {
	broadcaster := &capturingBroadcaster{}
	relay := NewEventRelayHandler("reservations.events", usecase.NewBroadcastUseCase(broadcaster))
	assert.Equal(t, "reservations.events", relay.Topic())

	event := reservations.NewUpsertEvent(reservations.FormatSecond, &reservations.Reservation{ReservationCode: "XXX12345678"}, false)
	value, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, relay.Handle(context.Background(), broker.Delivery{Topic: "reservations.events", Value: value}))
	require.Len(t, broadcaster.messages, 1)

	msg := broadcaster.messages[0]
	assert.Equal(t, "reservations.updated", msg.Topic)
	assert.Equal(t, "XXX12345678", msg.Metadata[domain.MetadataReservationCode])
	assert.Equal(t, event.ID.String(), msg.Metadata["eventId"])
}

func TestEventRelaySkipsUndecodable(t *testing.T) {
	broadcaster := &capturingBroadcaster{}
	relay := NewEventRelayHandler("reservations.events", usecase.NewBroadcastUseCase(broadcaster))

	require.Error(t, relay.Handle(context.Background(), broker.Delivery{Value: []byte("nope")}))
	require.NoError(t, relay.Handle(context.Background(), broker.Delivery{Value: []byte(`{}`)}))
	assert.Empty(t, broadcaster.messages)
}
