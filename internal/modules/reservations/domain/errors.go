package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEndDateNotAfterStartDate is returned when a stay does not end after it starts.
var ErrEndDateNotAfterStartDate = errors.New("end_date must be greater than start_date")

// ParameterError reports the first malformed field of an inbound payload.
// Its message is meant to be shown to the caller verbatim.
type ParameterError struct {
	Field   string
	Message string
}

func (e *ParameterError) Error() string { return e.Message }

func errRequired(field string) *ParameterError {
	return &ParameterError{Field: field, Message: fmt.Sprintf("Parameter %s is required", field)}
}

func errBlank(field string) *ParameterError {
	return &ParameterError{Field: field, Message: fmt.Sprintf("Parameter %s cannot be blank", field)}
}

func errInvalidType(field string, value, typeName string) *ParameterError {
	return &ParameterError{Field: field, Message: fmt.Sprintf("'%s' is not a valid %s", value, typeName)}
}

func errNotWithin(field string, allowed []string) *ParameterError {
	quoted := make([]string, 0, len(allowed))
	for _, value := range allowed {
		quoted = append(quoted, fmt.Sprintf("%q", value))
	}
	return &ParameterError{
		Field:   field,
		Message: fmt.Sprintf("Parameter %s must be within [%s]", field, strings.Join(quoted, ", ")),
	}
}

func errTooFewEntries(field string, min int) *ParameterError {
	noun := "entries"
	if min == 1 {
		noun = "entry"
	}
	return &ParameterError{Field: field, Message: fmt.Sprintf("Parameter %s must have at least %d %s", field, min, noun)}
}

// InvalidDateFormatError names the date field that is not a real YYYY-MM-DD date.
type InvalidDateFormatError struct {
	Field string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("%s has invalid date format", e.Field)
}

// RecordInvalidError carries the constraint violations found while persisting a record.
type RecordInvalidError struct {
	Messages []string
}

func (e *RecordInvalidError) Error() string {
	return "Validation failed: " + strings.Join(e.Messages, ", ")
}

// NewRecordInvalid builds a RecordInvalidError, or returns nil when there is nothing to report.
func NewRecordInvalid(messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return &RecordInvalidError{Messages: messages}
}

// NotFoundError is returned when a referenced record does not exist.
type NotFoundError struct {
	Model string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Couldn't find %s", e.Model)
}
