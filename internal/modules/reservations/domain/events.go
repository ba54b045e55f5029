package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventAction names what happened to a reservation.
type EventAction string

const (
	EventCreated  EventAction = "created"
	EventUpdated  EventAction = "updated"
	EventRejected EventAction = "rejected"
)

// EventEntity is the entity name used to build event topics.
const EventEntity = "reservations"

// ReservationEvent is published after a booking is accepted or rejected.
type ReservationEvent struct {
	ID          uuid.UUID     `json:"id"`
	Action      EventAction   `json:"action"`
	Format      PayloadFormat `json:"format,omitempty"`
	Code        string        `json:"reservationCode,omitempty"`
	Reservation *Reservation  `json:"reservation,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	OccurredAt  time.Time     `json:"occurredAt"`
}

// Topic returns the entity.action topic of the event, e.g. "reservations.created".
func (e ReservationEvent) Topic() string {
	return EventEntity + "." + string(e.Action)
}

// NewUpsertEvent describes a successful create or update of reservation.
func NewUpsertEvent(format PayloadFormat, reservation *Reservation, created bool) ReservationEvent {
	action := EventUpdated
	if created {
		action = EventCreated
	}
	return ReservationEvent{
		ID:          uuid.New(),
		Action:      action,
		Format:      format,
		Code:        reservation.ReservationCode,
		Reservation: reservation,
		OccurredAt:  time.Now().UTC(),
	}
}

// NewRejectedEvent describes a booking that could not be stored.
func NewRejectedEvent(format PayloadFormat, code string, reason error) ReservationEvent {
	event := ReservationEvent{
		ID:         uuid.New(),
		Action:     EventRejected,
		Format:     format,
		Code:       code,
		OccurredAt: time.Now().UTC(),
	}
	if reason != nil {
		event.Reason = reason.Error()
	}
	return event
}
