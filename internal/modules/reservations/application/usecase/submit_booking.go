package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/domain"
)

// BookingResult is the outcome of an accepted booking payload.
type BookingResult struct {
	Format      domain.PayloadFormat
	Reservation *domain.Reservation
	Created     bool
}

// SubmitBookingUseCase turns a raw booking payload in either format into a
// stored guest and reservation.
type SubmitBookingUseCase struct {
	guests       port.GuestRepository
	reservations port.ReservationRepository
	upsert       *UpsertReservationUseCase
	publisher    port.EventPublisher
}

// NewSubmitBookingUseCase wires the booking flow. publisher may be nil.
func NewSubmitBookingUseCase(
	guests port.GuestRepository,
	reservations port.ReservationRepository,
	upsert *UpsertReservationUseCase,
	publisher port.EventPublisher,
) *SubmitBookingUseCase {
	return &SubmitBookingUseCase{
		guests:       guests,
		reservations: reservations,
		upsert:       upsert,
		publisher:    publisher,
	}
}

// Execute parses raw, resolves the guest by email, saves it, then upserts
// the guest's reservation for the payload's code. The guest is stored before
// and independently of the reservation transaction.
func (uc *SubmitBookingUseCase) Execute(ctx context.Context, raw map[string]any) (*BookingResult, error) {
	request, err := domain.ParseBookingRequest(raw)
	if err != nil {
		return nil, err
	}
	booking := request.Normalize()

	guest, err := uc.resolveGuest(ctx, booking.Guest)
	if err != nil {
		return nil, err
	}

	code := booking.Reservation.ReservationCode
	reservation, err := uc.reservations.FindReservation(ctx, guest.ID, code)
	switch {
	case errors.Is(err, port.ErrRecordNotFound):
		reservation = domain.NewReservation(guest, code)
	case err != nil:
		return nil, fmt.Errorf("find reservation %s: %w", code, err)
	default:
		reservation.Guest = guest
	}

	saved, created, err := uc.upsert.Execute(ctx, reservation, booking.Reservation)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.NewUpsertEvent(booking.Format, saved, created))

	return &BookingResult{Format: booking.Format, Reservation: saved, Created: created}, nil
}

func (uc *SubmitBookingUseCase) resolveGuest(ctx context.Context, params domain.GuestParams) (*domain.Guest, error) {
	guest, err := uc.guests.FindGuestByEmail(ctx, params.Email)
	switch {
	case errors.Is(err, port.ErrRecordNotFound):
		guest = &domain.Guest{}
	case err != nil:
		return nil, fmt.Errorf("find guest: %w", err)
	}

	params.ApplyTo(guest)
	if err := uc.guests.SaveGuest(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (uc *SubmitBookingUseCase) publish(ctx context.Context, event domain.ReservationEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishReservationEvent(ctx, event); err != nil {
		slog.Warn("reservation event publish failed",
			slog.String("eventId", event.ID.String()),
			slog.String("topic", event.Topic()),
			slog.Any("error", err),
		)
	}
}
