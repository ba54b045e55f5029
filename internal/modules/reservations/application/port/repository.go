package port

import (
	"context"
	"errors"

	"bookingHub/internal/modules/reservations/domain"
)

// ErrRecordNotFound is returned by repositories when a lookup matches nothing.
var ErrRecordNotFound = errors.New("record not found")

// GuestRepository persists guests keyed by email.
type GuestRepository interface {
	FindGuestByEmail(ctx context.Context, email string) (*domain.Guest, error)
	// SaveGuest inserts or updates guest and assigns its identity. Constraint
	// failures are reported as *domain.RecordInvalidError.
	SaveGuest(ctx context.Context, guest *domain.Guest) error
}

// ReservationRepository persists reservations keyed by their code.
type ReservationRepository interface {
	// FindReservation looks the code up among the reservations owned by guestID.
	FindReservation(ctx context.Context, guestID uint, code string) (*domain.Reservation, error)
	FindReservationByCode(ctx context.Context, code string) (*domain.Reservation, error)
	// SaveReservation inserts or updates reservation and assigns its identity.
	// Constraint failures are reported as *domain.RecordInvalidError.
	SaveReservation(ctx context.Context, reservation *domain.Reservation) error
}

// Transactor runs fn inside a single database transaction. Repositories
// called with the context handed to fn take part in it. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
