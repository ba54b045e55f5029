package usecase

import (
	"context"
	"errors"
	"fmt"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/domain"
)

type FindReservationUseCase struct {
	reservations port.ReservationRepository
}

func NewFindReservationUseCase(reservations port.ReservationRepository) *FindReservationUseCase {
	return &FindReservationUseCase{reservations: reservations}
}

// Execute loads the reservation stored under code together with its guest.
func (uc *FindReservationUseCase) Execute(ctx context.Context, code string) (*domain.Reservation, error) {
	reservation, err := uc.reservations.FindReservationByCode(ctx, code)
	if errors.Is(err, port.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Model: "Reservation", Key: code}
	}
	if err != nil {
		return nil, fmt.Errorf("find reservation %s: %w", code, err)
	}
	return reservation, nil
}
