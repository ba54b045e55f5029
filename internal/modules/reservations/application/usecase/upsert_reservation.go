package usecase

import (
	"context"
	"errors"
	"log/slog"

	"bookingHub/internal/modules/reservations/application/port"
	"bookingHub/internal/modules/reservations/domain"
)

// ErrNilReservation is returned when the upsert is called without a handle.
var ErrNilReservation = errors.New("reservation handle is required")

// UpsertReservationUseCase validates the stay dates and persists a
// reservation in a single transaction.
type UpsertReservationUseCase struct {
	reservations port.ReservationRepository
	tx           port.Transactor
}

func NewUpsertReservationUseCase(reservations port.ReservationRepository, tx port.Transactor) *UpsertReservationUseCase {
	return &UpsertReservationUseCase{reservations: reservations, tx: tx}
}

// Execute overwrites reservation with params and saves it. created reports
// whether the handle had no stored identity beforehand. The handle is only
// modified when the transaction commits.
func (uc *UpsertReservationUseCase) Execute(
	ctx context.Context,
	reservation *domain.Reservation,
	params domain.ReservationParams,
) (*domain.Reservation, bool, error) {
	if reservation == nil {
		return nil, false, ErrNilReservation
	}

	created := !reservation.Persisted()
	working := *reservation

	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := domain.ValidateStayDates(params.StartDate, params.EndDate); err != nil {
			return err
		}
		params.ApplyTo(&working)
		return uc.reservations.SaveReservation(ctx, &working)
	})
	if err != nil {
		slog.Debug("reservation upsert rolled back",
			slog.String("reservationCode", params.ReservationCode),
			slog.Bool("create", created),
			slog.Any("error", err),
		)
		return nil, false, err
	}

	*reservation = working
	slog.Info("reservation upserted",
		slog.String("reservationCode", reservation.ReservationCode),
		slog.Uint64("id", uint64(reservation.ID)),
		slog.Bool("created", created),
	)
	return reservation, created, nil
}
