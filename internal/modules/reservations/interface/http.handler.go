package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"bookingHub/internal/modules/reservations/application/usecase"
	"bookingHub/internal/modules/reservations/domain"
	"bookingHub/internal/shared/httputil"
)

var errMalformedBody = errors.New("request body must be a JSON object")

type ReservationHandler struct {
	submit *usecase.SubmitBookingUseCase
	find   *usecase.FindReservationUseCase
	errors *httputil.ErrorMapper
}

func NewReservationHandler(submit *usecase.SubmitBookingUseCase, find *usecase.FindReservationUseCase) *ReservationHandler {
	return &ReservationHandler{submit: submit, find: find, errors: NewErrorMapper()}
}

// Register mounts the reservation routes on g, typically /api/v1.
func (h *ReservationHandler) Register(g *echo.Group) {
	g.POST("/reservations", h.Create)
	g.GET("/reservations/:code", h.Show)
}

// Create accepts a booking in either format. It answers 201 with the
// reservation rendered in the request's format, or 204 when an existing
// reservation was updated.
func (h *ReservationHandler) Create(c echo.Context) error {
	raw, err := decodeBody(c.Request().Body)
	if err != nil {
		return h.fail(c, err)
	}

	result, err := h.submit.Execute(c.Request().Context(), raw)
	if err != nil {
		return h.fail(c, err)
	}
	if !result.Created {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusCreated, Serialize(result.Format, result.Reservation))
}

// Show renders a stored reservation, in the first format unless ?format=second.
func (h *ReservationHandler) Show(c echo.Context) error {
	format := domain.FormatFirst
	if raw := strings.TrimSpace(c.QueryParam("format")); raw != "" {
		parsed, ok := domain.ParsePayloadFormat(raw)
		if !ok {
			return httputil.Respond(c, httputil.HTTPErrorInfo{
				Status:  http.StatusBadRequest,
				Message: fmt.Sprintf(`Parameter format must be within ["%s", "%s"]`, domain.FormatFirst, domain.FormatSecond),
			})
		}
		format = parsed
	}

	reservation, err := h.find.Execute(c.Request().Context(), c.Param("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, Serialize(format, reservation))
}

func (h *ReservationHandler) fail(c echo.Context, err error) error {
	info := h.errors.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("reservation request failed",
			slog.String("path", c.Path()),
			slog.String("reqID", c.Response().Header().Get(echo.HeaderXRequestID)),
			slog.Any("error", err),
		)
	} else {
		slog.Debug("reservation request rejected", slog.Int("status", info.Status), slog.String("message", info.Message))
	}
	return httputil.Respond(c, info)
}

// decodeBody reads a JSON object keeping numbers as json.Number. An empty
// body decodes to an empty payload.
func decodeBody(body io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	raw, ok := payload.(map[string]any)
	if !ok {
		return nil, errMalformedBody
	}
	return raw, nil
}
