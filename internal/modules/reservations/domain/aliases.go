package domain

import "strings"

// Canonical field names. First-format payloads already use these names.
const (
	FieldReservationCode      = "reservation_code"
	FieldStartDate            = "start_date"
	FieldEndDate              = "end_date"
	FieldNights               = "nights"
	FieldGuests               = "guests"
	FieldAdults               = "adults"
	FieldChildren             = "children"
	FieldInfants              = "infants"
	FieldStatus               = "status"
	FieldCurrency             = "currency"
	FieldPayoutPrice          = "payout_price"
	FieldSecurityPrice        = "security_price"
	FieldTotalPrice           = "total_price"
	FieldLocalizedDescription = "localized_description"

	FieldGuest          = "guest"
	FieldGuestEmail     = "email"
	FieldGuestFirstName = "first_name"
	FieldGuestLastName  = "last_name"
	FieldGuestPhone     = "phone"
)

// Second-format names that have no canonical counterpart.
const (
	SecondFormatEnvelope     = "reservation"
	SecondFormatGuestDetails = "guest_details"
)

// PhoneSeparator joins a guest's phone numbers into the single stored value.
const PhoneSeparator = ", "

// FieldAliases is a static two-way table between canonical names and the
// names used by an external format.
type FieldAliases struct {
	toExternal  map[string]string
	toCanonical map[string]string
}

func newFieldAliases(pairs map[string]string) FieldAliases {
	aliases := FieldAliases{
		toExternal:  make(map[string]string, len(pairs)),
		toCanonical: make(map[string]string, len(pairs)),
	}
	for canonical, external := range pairs {
		aliases.toExternal[canonical] = external
		aliases.toCanonical[external] = canonical
	}
	return aliases
}

// ReservationAliases maps canonical reservation fields to second-format names.
var ReservationAliases = newFieldAliases(map[string]string{
	FieldReservationCode: "code",
	FieldGuests:          "number_of_guests",
	FieldAdults:          "number_of_adults",
	FieldChildren:        "number_of_children",
	FieldInfants:         "number_of_infants",
	FieldStatus:          "status_type",
	FieldCurrency:        "host_currency",
	FieldPayoutPrice:     "expected_payout_amount",
	FieldSecurityPrice:   "listing_security_price_accurate",
	FieldTotalPrice:      "total_paid_amount_accurate",
})

// GuestAliases maps canonical guest fields to second-format names. The phone
// alias carries a list on the wire; see SplitPhones and JoinPhones.
var GuestAliases = newFieldAliases(map[string]string{
	FieldGuestEmail:     "guest_email",
	FieldGuestFirstName: "guest_first_name",
	FieldGuestLastName:  "guest_last_name",
	FieldGuestPhone:     "guest_phone_numbers",
})

// External returns the external name for a canonical field. Fields without an
// alias keep their canonical name.
func (a FieldAliases) External(canonical string) string {
	if external, ok := a.toExternal[canonical]; ok {
		return external
	}
	return canonical
}

// Canonical returns the canonical name for an external field. Fields without
// an alias keep their external name.
func (a FieldAliases) Canonical(external string) string {
	if canonical, ok := a.toCanonical[external]; ok {
		return canonical
	}
	return external
}

// ToCanonical returns a copy of fields with every aliased key renamed to its
// canonical name.
func (a FieldAliases) ToCanonical(fields map[string]any) map[string]any {
	renamed := make(map[string]any, len(fields))
	for key, value := range fields {
		renamed[a.Canonical(key)] = value
	}
	return renamed
}

// ToExternal returns a copy of fields with every canonical key renamed to its
// external name.
func (a FieldAliases) ToExternal(fields map[string]any) map[string]any {
	renamed := make(map[string]any, len(fields))
	for key, value := range fields {
		renamed[a.External(key)] = value
	}
	return renamed
}

// JoinPhones folds a list of phone numbers into the stored single value.
func JoinPhones(phones []string) string {
	return strings.Join(phones, PhoneSeparator)
}

// SplitPhones expands the stored phone value back into a list.
func SplitPhones(phone string) []string {
	if phone == "" {
		return []string{}
	}
	return strings.Split(phone, PhoneSeparator)
}
