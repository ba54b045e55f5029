package domain

// ReservationParams is the canonical, format-agnostic reservation parameter
// set. It never carries guest fields.
type ReservationParams struct {
	ReservationCode string
	StartDate       string
	EndDate         string
	Nights          int
	Guests          int
	Adults          int
	Children        int
	Infants         int
	Status          ReservationStatus
	Currency        Currency
	PayoutPrice     float64
	SecurityPrice   float64
	TotalPrice      float64
	// LocalizedDescription is only supplied by second-format payloads; nil leaves the stored value untouched.
	LocalizedDescription *string
}

// ApplyTo overwrites every supplied field on reservation.
func (p ReservationParams) ApplyTo(reservation *Reservation) {
	reservation.ReservationCode = p.ReservationCode
	reservation.StartDate = p.StartDate
	reservation.EndDate = p.EndDate
	reservation.Nights = p.Nights
	reservation.Guests = p.Guests
	reservation.Adults = p.Adults
	reservation.Children = p.Children
	reservation.Infants = p.Infants
	reservation.Status = p.Status
	reservation.Currency = p.Currency
	reservation.PayoutPrice = p.PayoutPrice
	reservation.SecurityPrice = p.SecurityPrice
	reservation.TotalPrice = p.TotalPrice
	if p.LocalizedDescription != nil {
		reservation.LocalizedDescription = *p.LocalizedDescription
	}
}

// GuestParams is the canonical guest parameter set.
type GuestParams struct {
	Email     string
	FirstName string
	// LastName is optional; nil leaves the stored value untouched.
	LastName *string
	Phone    string
}

// ApplyTo overwrites every supplied field on guest.
func (p GuestParams) ApplyTo(guest *Guest) {
	guest.Email = p.Email
	guest.FirstName = p.FirstName
	if p.LastName != nil {
		guest.LastName = *p.LastName
	}
	guest.Phone = p.Phone
}

// reservationParamsFrom assembles the parameter set from validated values
// keyed by canonical names.
func reservationParamsFrom(fields values) ReservationParams {
	return ReservationParams{
		ReservationCode:      fields.str(FieldReservationCode),
		StartDate:            fields.str(FieldStartDate),
		EndDate:              fields.str(FieldEndDate),
		Nights:               fields.integer(FieldNights),
		Guests:               fields.integer(FieldGuests),
		Adults:               fields.integer(FieldAdults),
		Children:             fields.integer(FieldChildren),
		Infants:              fields.integer(FieldInfants),
		Status:               ParseReservationStatus(fields.str(FieldStatus)),
		Currency:             ParseCurrency(fields.str(FieldCurrency)),
		PayoutPrice:          fields.float(FieldPayoutPrice),
		SecurityPrice:        fields.float(FieldSecurityPrice),
		TotalPrice:           fields.float(FieldTotalPrice),
		LocalizedDescription: fields.optionalStr(FieldLocalizedDescription),
	}
}

// guestParamsFrom assembles the guest parameter set from validated values
// keyed by canonical names. Phone may be a single value or a list.
func guestParamsFrom(fields values) GuestParams {
	phone := fields.str(FieldGuestPhone)
	if phones := fields.strList(FieldGuestPhone); phones != nil {
		phone = JoinPhones(phones)
	}
	return GuestParams{
		Email:     fields.str(FieldGuestEmail),
		FirstName: fields.str(FieldGuestFirstName),
		LastName:  fields.optionalStr(FieldGuestLastName),
		Phone:     phone,
	}
}
