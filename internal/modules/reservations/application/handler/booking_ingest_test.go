package handler

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingHub/internal/config"
	"bookingHub/internal/modules/reservations/application/usecase"
	"bookingHub/internal/modules/reservations/domain"
	"bookingHub/internal/modules/reservations/infrastructure"
	"bookingHub/internal/platform/broker"
	"bookingHub/internal/platform/database"
)

type eventSink struct {
	mu     sync.Mutex
	events []domain.ReservationEvent
}

func (s *eventSink) PublishReservationEvent(_ context.Context, event domain.ReservationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *eventSink) actions() []domain.EventAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]domain.EventAction, 0, len(s.events))
	for _, e := range s.events {
		actions = append(actions, e.Action)
	}
	return actions
}

func newIngestHandler(t *testing.T) (*BookingIngestHandler, *infrastructure.Store, *eventSink) {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db, infrastructure.Models()...))

	store := infrastructure.NewStore(db)
	sink := &eventSink{}
	submit := usecase.NewSubmitBookingUseCase(store, store, usecase.NewUpsertReservationUseCase(store, store), sink)
	return NewBookingIngestHandler("bookings.inbound", submit, sink), store, sink
}

const secondFormatMessage = `{
  "data": {
    "reservation": {
      "code": "XXX12345678",
      "start_date": "2021-03-12",
      "end_date": "2021-03-16",
      "expected_payout_amount": "3800.00",
      "guest_details": {
        "localized_description": "4 guests",
        "number_of_adults": 2,
        "number_of_children": 2,
        "number_of_infants": 0
      },
      "guest_email": "wayne_woodbridge@bnb.com",
      "guest_first_name": "Wayne",
      "guest_last_name": "Woodbridge",
      "guest_phone_numbers": ["639123456789", "639123456700"],
      "listing_security_price_accurate": "500.00",
      "host_currency": "AUD",
      "nights": 4,
      "number_of_guests": 4,
      "status_type": "accepted",
      "total_paid_amount_accurate": "4300.00"
    }
  }
}`

func TestBookingIngestStoresWrappedPayload(t *testing.T) {
	handler, store, sink := newIngestHandler(t)
	assert.Equal(t, "bookings.inbound", handler.Topic())

	delivery := broker.Delivery{Topic: "bookings.inbound", Offset: 1, Value: []byte(secondFormatMessage)}
	require.NoError(t, handler.Handle(context.Background(), delivery))

	stored, err := store.FindReservationByCode(context.Background(), "XXX12345678")
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Nights)
	assert.Equal(t, "639123456789, 639123456700", stored.Guest.Phone)
	assert.Equal(t, []domain.EventAction{domain.EventCreated}, sink.actions())

	require.NoError(t, handler.Handle(context.Background(), delivery))
	assert.Equal(t, []domain.EventAction{domain.EventCreated, domain.EventUpdated}, sink.actions())
}

func TestBookingIngestRejects(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"reservation":`,
		"not an object":   `[1, 2, 3]`,
		"invalid payload": `{"reservation": {"code": "XXX12345678"}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			handler, _, sink := newIngestHandler(t)
			err := handler.Handle(context.Background(), broker.Delivery{Topic: "bookings.inbound", Key: []byte("XXX12345678"), Value: []byte(body)})
			require.Error(t, err)
			require.Equal(t, []domain.EventAction{domain.EventRejected}, sink.actions())
			assert.Equal(t, "XXX12345678", sink.events[0].Code)
			assert.NotEmpty(t, sink.events[0].Reason)
		})
	}
}
