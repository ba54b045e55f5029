package domain

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	reservationCodePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{8}$`)
	emailPattern           = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
)

var constraints = newConstraintValidator()

func newConstraintValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("label")
	})
	mustRegister(v, "reservation_code", func(fl validator.FieldLevel) bool {
		return reservationCodePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "guest_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "reservation_status", func(fl validator.FieldLevel) bool {
		return ReservationStatus(fl.Field().String()).Valid()
	})
	mustRegister(v, "currency", func(fl validator.FieldLevel) bool {
		return Currency(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

type guestConstraints struct {
	Email string `label:"Email" validate:"required,guest_email"`
}

type reservationConstraints struct {
	GuestID         uint   `label:"Guest" validate:"required"`
	ReservationCode string `label:"Reservation code" validate:"required,reservation_code"`
	Status          string `label:"Status" validate:"reservation_status"`
	Currency        string `label:"Currency" validate:"currency"`
}

// GuestViolations returns the human-readable constraint violations of guest.
func GuestViolations(guest *Guest) []string {
	return violations(constraints.Struct(guestConstraints{Email: guest.Email}))
}

// ReservationViolations returns the human-readable constraint violations of reservation.
func ReservationViolations(reservation *Reservation) []string {
	return violations(constraints.Struct(reservationConstraints{
		GuestID:         reservation.GuestID,
		ReservationCode: reservation.ReservationCode,
		Status:          string(reservation.Status),
		Currency:        string(reservation.Currency),
	}))
}

func violations(err error) []string {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch {
		case fe.StructField() == "GuestID":
			messages = append(messages, fe.Field()+" must exist")
		case fe.Tag() == "required":
			messages = append(messages, fe.Field()+" can't be blank")
		default:
			messages = append(messages, fe.Field()+" is invalid")
		}
	}
	return messages
}
