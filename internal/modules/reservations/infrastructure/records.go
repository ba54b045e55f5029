package infrastructure

import (
	"time"

	"bookingHub/internal/modules/reservations/domain"
)

// GuestRecord is the gorm model behind the guests table.
type GuestRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	FirstName string `gorm:"size:255"`
	LastName  string `gorm:"size:255"`
	Phone     string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GuestRecord) TableName() string { return "guests" }

// ReservationRecord is the gorm model behind the reservations table.
type ReservationRecord struct {
	ID                   uint      `gorm:"primaryKey"`
	GuestID              uint      `gorm:"not null;index"`
	ReservationCode      string    `gorm:"type:char(11);not null;uniqueIndex"`
	StartDate            time.Time `gorm:"type:date"`
	EndDate              time.Time `gorm:"type:date"`
	Nights               int
	Guests               int
	Adults               int
	Children             int
	Infants              int
	Status               string  `gorm:"size:16"`
	Currency             string  `gorm:"type:char(3);not null"`
	PayoutPrice          float64 `gorm:"type:numeric(10,2)"`
	SecurityPrice        float64 `gorm:"type:numeric(10,2)"`
	TotalPrice           float64 `gorm:"type:numeric(10,2)"`
	LocalizedDescription string  `gorm:"type:text"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Guest *GuestRecord `gorm:"foreignKey:GuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ReservationRecord) TableName() string { return "reservations" }

// Models lists the records to auto-migrate, owners first.
func Models() []any {
	return []any{&GuestRecord{}, &ReservationRecord{}}
}

func guestToRecord(guest *domain.Guest) GuestRecord {
	return GuestRecord{
		ID:        guest.ID,
		Email:     guest.Email,
		FirstName: guest.FirstName,
		LastName:  guest.LastName,
		Phone:     guest.Phone,
		CreatedAt: guest.CreatedAt,
		UpdatedAt: guest.UpdatedAt,
	}
}

func guestFromRecord(rec *GuestRecord) *domain.Guest {
	if rec == nil {
		return nil
	}
	return &domain.Guest{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Phone:     rec.Phone,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func reservationToRecord(reservation *domain.Reservation) ReservationRecord {
	return ReservationRecord{
		ID:                   reservation.ID,
		GuestID:              reservation.GuestID,
		ReservationCode:      reservation.ReservationCode,
		StartDate:            parseDate(reservation.StartDate),
		EndDate:              parseDate(reservation.EndDate),
		Nights:               reservation.Nights,
		Guests:               reservation.Guests,
		Adults:               reservation.Adults,
		Children:             reservation.Children,
		Infants:              reservation.Infants,
		Status:               string(reservation.Status),
		Currency:             string(reservation.Currency),
		PayoutPrice:          reservation.PayoutPrice,
		SecurityPrice:        reservation.SecurityPrice,
		TotalPrice:           reservation.TotalPrice,
		LocalizedDescription: reservation.LocalizedDescription,
		CreatedAt:            reservation.CreatedAt,
		UpdatedAt:            reservation.UpdatedAt,
	}
}

func reservationFromRecord(rec *ReservationRecord) *domain.Reservation {
	return &domain.Reservation{
		ID:                   rec.ID,
		GuestID:              rec.GuestID,
		ReservationCode:      rec.ReservationCode,
		StartDate:            formatDate(rec.StartDate),
		EndDate:              formatDate(rec.EndDate),
		Nights:               rec.Nights,
		Guests:               rec.Guests,
		Adults:               rec.Adults,
		Children:             rec.Children,
		Infants:              rec.Infants,
		Status:               domain.NormalizeReservationStatus(rec.Status),
		Currency:             domain.Currency(rec.Currency),
		PayoutPrice:          rec.PayoutPrice,
		SecurityPrice:        rec.SecurityPrice,
		TotalPrice:           rec.TotalPrice,
		LocalizedDescription: rec.LocalizedDescription,
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
		Guest:                guestFromRecord(rec.Guest),
	}
}

// parseDate expects a validated YYYY-MM-DD value.
func parseDate(value string) time.Time {
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(domain.DateLayout)
}
