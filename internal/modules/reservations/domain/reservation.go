package domain

import "time"

// Guest is the person a reservation is booked for. Email is the natural key.
type Guest struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Persisted reports whether the guest already has a stored identity.
func (g *Guest) Persisted() bool {
	return g != nil && g.ID != 0
}

// Reservation is the canonical booking record shared by every inbound format.
// Dates are kept as validated YYYY-MM-DD strings.
type Reservation struct {
	ID                   uint              `json:"id"`
	GuestID              uint              `json:"guest_id"`
	ReservationCode      string            `json:"reservation_code"`
	StartDate            string            `json:"start_date"`
	EndDate              string            `json:"end_date"`
	Nights               int               `json:"nights"`
	Guests               int               `json:"guests"`
	Adults               int               `json:"adults"`
	Children             int               `json:"children"`
	Infants              int               `json:"infants"`
	Status               ReservationStatus `json:"status"`
	Currency             Currency          `json:"currency"`
	PayoutPrice          float64           `json:"payout_price"`
	SecurityPrice        float64           `json:"security_price"`
	TotalPrice           float64           `json:"total_price"`
	LocalizedDescription string            `json:"localized_description,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`

	// Guest is populated when the reservation is loaded or upserted together with its owner.
	Guest *Guest `json:"guest,omitempty"`
}

// Persisted reports whether the reservation already has a stored identity.
func (r *Reservation) Persisted() bool {
	return r != nil && r.ID != 0
}

// NewReservation initializes an unsaved reservation owned by guest.
func NewReservation(guest *Guest, code string) *Reservation {
	reservation := &Reservation{ReservationCode: code, Guest: guest}
	if guest != nil {
		reservation.GuestID = guest.ID
	}
	return reservation
}
