package domain

import (
	"regexp"

	"bookingHub/internal/shared/normalization"
)

// PayloadFormat identifies which external shape a booking arrived in.
type PayloadFormat string

const (
	// FormatFirst is the flat shape using canonical field names.
	FormatFirst PayloadFormat = "first"
	// FormatSecond is the shape wrapped under a top-level "reservation" key.
	FormatSecond PayloadFormat = "second"
)

// ParsePayloadFormat maps a textual format name to a PayloadFormat.
func ParsePayloadFormat(raw string) (PayloadFormat, bool) {
	switch PayloadFormat(raw) {
	case FormatFirst:
		return FormatFirst, true
	case FormatSecond:
		return FormatSecond, true
	default:
		return "", false
	}
}

const invalidPhoneMessage = "Please only input number with lengths min: 10 and max: 14"

var phonePattern = regexp.MustCompile(`^[0-9]{10,14}$`)

var firstFormatSchema = schema{
	{name: FieldReservationCode, kind: kindString},
	{name: FieldStatus, kind: kindString, allowed: ReservationStatuses()},
	{name: FieldStartDate, kind: kindString},
	{name: FieldEndDate, kind: kindString},
	{name: FieldNights, kind: kindInteger},
	{name: FieldGuests, kind: kindInteger},
	{name: FieldAdults, kind: kindInteger},
	{name: FieldChildren, kind: kindInteger},
	{name: FieldInfants, kind: kindInteger},
	{name: FieldCurrency, kind: kindString, allowed: Currencies()},
	{name: FieldPayoutPrice, kind: kindFloat, precision: 2},
	{name: FieldSecurityPrice, kind: kindFloat, precision: 2},
	{name: FieldTotalPrice, kind: kindFloat, precision: 2},
	{name: FieldGuest, kind: kindObject, fields: schema{
		{name: FieldGuestFirstName, kind: kindString},
		{name: FieldGuestLastName, kind: kindString, optional: true},
		{name: FieldGuestEmail, kind: kindString},
		{name: FieldGuestPhone, kind: kindString, pattern: phonePattern, patternMessage: invalidPhoneMessage},
	}},
}

var secondFormatSchema = schema{
	{name: ReservationAliases.External(FieldReservationCode), kind: kindString},
	{name: ReservationAliases.External(FieldStatus), kind: kindString, allowed: ReservationStatuses()},
	{name: FieldStartDate, kind: kindString},
	{name: FieldEndDate, kind: kindString},
	{name: FieldNights, kind: kindInteger},
	{name: ReservationAliases.External(FieldGuests), kind: kindInteger},
	{name: GuestAliases.External(FieldGuestFirstName), kind: kindString},
	{name: GuestAliases.External(FieldGuestLastName), kind: kindString, optional: true},
	{name: GuestAliases.External(FieldGuestEmail), kind: kindString},
	{name: GuestAliases.External(FieldGuestPhone), kind: kindStringList, minItems: 1, pattern: phonePattern, patternMessage: invalidPhoneMessage},
	{name: ReservationAliases.External(FieldCurrency), kind: kindString, allowed: Currencies()},
	{name: ReservationAliases.External(FieldPayoutPrice), kind: kindFloat, precision: 2},
	{name: ReservationAliases.External(FieldSecurityPrice), kind: kindFloat, precision: 2},
	{name: ReservationAliases.External(FieldTotalPrice), kind: kindFloat, precision: 2},
	{name: SecondFormatGuestDetails, kind: kindObject, fields: schema{
		{name: FieldLocalizedDescription, kind: kindString},
		{name: ReservationAliases.External(FieldAdults), kind: kindInteger},
		{name: ReservationAliases.External(FieldChildren), kind: kindInteger},
		{name: ReservationAliases.External(FieldInfants), kind: kindInteger},
	}},
}

// NormalizedBooking is the canonical outcome of a validated booking payload.
type NormalizedBooking struct {
	Format      PayloadFormat
	Reservation ReservationParams
	Guest       GuestParams
}

// BookingRequest is a shape-validated booking payload in one of the two
// supported formats. Downstream code works on Normalize's result only.
type BookingRequest interface {
	Format() PayloadFormat
	Normalize() NormalizedBooking
	isBookingRequest()
}

// FirstFormatRequest is a validated flat payload.
type FirstFormatRequest struct {
	fields values
}

// SecondFormatRequest is a validated payload wrapped under "reservation".
type SecondFormatRequest struct {
	fields values
}

// DetectFormat returns FormatSecond when raw carries a non-blank top-level
// "reservation" key and FormatFirst otherwise.
func DetectFormat(raw map[string]any) PayloadFormat {
	if !normalization.IsBlank(raw[SecondFormatEnvelope]) {
		return FormatSecond
	}
	return FormatFirst
}

// ParseBookingRequest detects the payload format and validates its shape.
// Failures are reported as *ParameterError.
func ParseBookingRequest(raw map[string]any) (BookingRequest, error) {
	if DetectFormat(raw) == FormatSecond {
		envelope, ok := raw[SecondFormatEnvelope].(map[string]any)
		if !ok {
			return nil, errInvalidType(SecondFormatEnvelope, normalization.Describe(raw[SecondFormatEnvelope]), kindObject.String())
		}
		fields, err := secondFormatSchema.validate(envelope)
		if err != nil {
			return nil, err
		}
		return &SecondFormatRequest{fields: fields}, nil
	}

	fields, err := firstFormatSchema.validate(raw)
	if err != nil {
		return nil, err
	}
	return &FirstFormatRequest{fields: fields}, nil
}

func (*FirstFormatRequest) Format() PayloadFormat { return FormatFirst }
func (*FirstFormatRequest) isBookingRequest()     {}

// Normalize splits the flat payload into reservation and guest parameter sets.
func (r *FirstFormatRequest) Normalize() NormalizedBooking {
	return NormalizedBooking{
		Format:      FormatFirst,
		Reservation: reservationParamsFrom(r.fields),
		Guest:       guestParamsFrom(r.fields.object(FieldGuest)),
	}
}

func (*SecondFormatRequest) Format() PayloadFormat { return FormatSecond }
func (*SecondFormatRequest) isBookingRequest()     {}

// Normalize flattens guest_details into the reservation fields and renames
// every aliased field to its canonical name.
func (r *SecondFormatRequest) Normalize() NormalizedBooking {
	merged := make(values, len(r.fields))
	for key, value := range r.fields {
		if key == SecondFormatGuestDetails {
			continue
		}
		merged[key] = value
	}
	for key, value := range r.fields.object(SecondFormatGuestDetails) {
		merged[key] = value
	}

	canonical := values(ReservationAliases.ToCanonical(GuestAliases.ToCanonical(merged)))
	return NormalizedBooking{
		Format:      FormatSecond,
		Reservation: reservationParamsFrom(canonical),
		Guest:       guestParamsFrom(canonical),
	}
}
