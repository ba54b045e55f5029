package domain

import (
	"regexp"
	"time"
)

// DateLayout is the only calendar date layout accepted on the wire.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether value is a YYYY-MM-DD string naming a real
// calendar day. Anything else, including nil and non-strings, is invalid.
func IsValidDate(value any) bool {
	text, ok := value.(string)
	if !ok || !datePattern.MatchString(text) {
		return false
	}
	_, err := time.Parse(DateLayout, text)
	return err == nil
}

// ValidateStayDates checks both dates individually, start first, and then
// requires end to be strictly after start. Validated dates are fixed-width,
// so string ordering matches calendar ordering.
func ValidateStayDates(start, end string) error {
	if !IsValidDate(start) {
		return &InvalidDateFormatError{Field: FieldStartDate}
	}
	if !IsValidDate(end) {
		return &InvalidDateFormatError{Field: FieldEndDate}
	}
	if end <= start {
		return ErrEndDateNotAfterStartDate
	}
	return nil
}
