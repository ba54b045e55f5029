package transport

import (
	"strconv"

	"bookingHub/internal/modules/reservations/domain"
)

// Document is the JSON:API style envelope of a reservation response.
type Document struct {
	Data Resource `json:"data"`
}

type Resource struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
}

const resourceType = "reservation"

// Serialize renders reservation with the field names of format.
func Serialize(format domain.PayloadFormat, reservation *domain.Reservation) Document {
	var attributes map[string]any
	if format == domain.FormatSecond {
		attributes = secondFormatAttributes(reservation)
	} else {
		attributes = firstFormatAttributes(reservation)
	}
	return Document{Data: Resource{
		ID:         strconv.FormatUint(uint64(reservation.ID), 10),
		Type:       resourceType,
		Attributes: attributes,
	}}
}

func reservationAttributes(r *domain.Reservation) map[string]any {
	return map[string]any{
		domain.FieldReservationCode: r.ReservationCode,
		domain.FieldStartDate:       r.StartDate,
		domain.FieldEndDate:         r.EndDate,
		domain.FieldNights:          r.Nights,
		domain.FieldGuests:          r.Guests,
		domain.FieldAdults:          r.Adults,
		domain.FieldChildren:        r.Children,
		domain.FieldInfants:         r.Infants,
		domain.FieldStatus:          string(r.Status),
		domain.FieldCurrency:        string(r.Currency),
		domain.FieldPayoutPrice:     money(r.PayoutPrice),
		domain.FieldSecurityPrice:   money(r.SecurityPrice),
		domain.FieldTotalPrice:      money(r.TotalPrice),
	}
}

func guestAttributes(g *domain.Guest) map[string]any {
	if g == nil {
		g = &domain.Guest{}
	}
	return map[string]any{
		domain.FieldGuestEmail:     g.Email,
		domain.FieldGuestFirstName: g.FirstName,
		domain.FieldGuestLastName:  g.LastName,
		domain.FieldGuestPhone:     g.Phone,
	}
}

func firstFormatAttributes(r *domain.Reservation) map[string]any {
	attributes := reservationAttributes(r)
	attributes[domain.FieldGuest] = guestAttributes(r.Guest)
	return attributes
}

// secondFormatAttributes renames through the alias tables, nests the party
// breakdown under guest_details and turns the phone back into a list.
func secondFormatAttributes(r *domain.Reservation) map[string]any {
	canonical := reservationAttributes(r)
	for key, value := range guestAttributes(r.Guest) {
		canonical[key] = value
	}
	canonical[domain.FieldGuestPhone] = domain.SplitPhones(guestPhone(r))

	details := map[string]any{domain.FieldLocalizedDescription: r.LocalizedDescription}
	for _, field := range []string{domain.FieldAdults, domain.FieldChildren, domain.FieldInfants} {
		details[domain.ReservationAliases.External(field)] = canonical[field]
		delete(canonical, field)
	}

	external := domain.GuestAliases.ToExternal(domain.ReservationAliases.ToExternal(canonical))
	external[domain.SecondFormatGuestDetails] = details
	return external
}

func money(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func guestPhone(r *domain.Reservation) string {
	if r.Guest == nil {
		return ""
	}
	return r.Guest.Phone
}
