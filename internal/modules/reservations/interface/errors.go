package transport

import (
	"net/http"

	"bookingHub/internal/modules/reservations/domain"
	"bookingHub/internal/shared/httputil"
)

// NewErrorMapper maps booking failures to their HTTP responses.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMatcher(httputil.AsType[*domain.ParameterError](), http.StatusBadRequest).
		WithMatcher(httputil.AsType[*domain.InvalidDateFormatError](), http.StatusUnprocessableEntity).
		WithMapping(domain.ErrEndDateNotAfterStartDate, http.StatusUnprocessableEntity, "").
		WithMatcher(httputil.AsType[*domain.RecordInvalidError](), http.StatusUnprocessableEntity).
		WithMatcher(httputil.AsType[*domain.NotFoundError](), http.StatusNotFound).
		WithMapping(errMalformedBody, http.StatusBadRequest, "")
}
