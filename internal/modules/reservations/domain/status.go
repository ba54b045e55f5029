package domain

import "strings"

// ReservationStatus represents the lifecycle of a reservation as accepted from booking channels.
type ReservationStatus string

const (
	ReservationStatusUnknown  ReservationStatus = ""
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusAccepted ReservationStatus = "accepted"
	ReservationStatusRejected ReservationStatus = "rejected"
)

// Currency is the host currency a reservation is priced in.
type Currency string

const (
	CurrencyUnknown Currency = ""
	CurrencyAUD     Currency = "AUD"
	CurrencyUSD     Currency = "USD"
)

// Declaration order is the order used in validation messages.
var (
	reservationStatuses = []ReservationStatus{ReservationStatusPending, ReservationStatusAccepted, ReservationStatusRejected}
	currencies          = []Currency{CurrencyAUD, CurrencyUSD}
)

// ReservationStatuses lists the accepted statuses in declaration order.
func ReservationStatuses() []string {
	values := make([]string, 0, len(reservationStatuses))
	for _, status := range reservationStatuses {
		values = append(values, string(status))
	}
	return values
}

// Currencies lists the supported host currencies in declaration order.
func Currencies() []string {
	values := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		values = append(values, string(currency))
	}
	return values
}

// ParseReservationStatus returns the status matching value exactly, or
// ReservationStatusUnknown when value is not part of the closed set.
func ParseReservationStatus(value string) ReservationStatus {
	for _, status := range reservationStatuses {
		if string(status) == value {
			return status
		}
	}
	return ReservationStatusUnknown
}

// ParseCurrency returns the currency matching value exactly, or CurrencyUnknown.
func ParseCurrency(value string) Currency {
	for _, currency := range currencies {
		if string(currency) == value {
			return currency
		}
	}
	return CurrencyUnknown
}

// Valid reports whether s belongs to the closed status set.
func (s ReservationStatus) Valid() bool {
	return ParseReservationStatus(string(s)) != ReservationStatusUnknown
}

// Valid reports whether c belongs to the closed currency set.
func (c Currency) Valid() bool {
	return ParseCurrency(string(c)) != CurrencyUnknown
}

// NormalizeReservationStatus matches a stored status leniently: it trims and
// lowercases before matching.
func NormalizeReservationStatus(value string) ReservationStatus {
	return ParseReservationStatus(strings.ToLower(strings.TrimSpace(value)))
}
