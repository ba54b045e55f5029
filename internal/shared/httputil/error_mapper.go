package httputil

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// StatusName returns the snake_case name of the status, e.g. "unprocessable_entity".
func (i HTTPErrorInfo) StatusName() string {
	return StatusName(i.Status)
}

// Matcher reports whether err belongs to a mapping and, if so, the message to show.
type Matcher func(err error) (message string, ok bool)

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Match  Matcher
	Status int
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
// It provides a centralized way to handle error mapping across handlers.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping maps errors matching target (errors.Is) to status and a fixed message.
// An empty message reuses target's text.
func (m *ErrorMapper) WithMapping(target error, status int, message string) *ErrorMapper {
	if message == "" {
		message = target.Error()
	}
	return m.WithMatcher(func(err error) (string, bool) {
		return message, errors.Is(err, target)
	}, status)
}

// WithMatcher adds an arbitrary matcher.
func (m *ErrorMapper) WithMatcher(match Matcher, status int) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Match: match, Status: status})
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range m.mappings {
		if message, ok := mapping.Match(err); ok {
			return HTTPErrorInfo{Status: mapping.Status, Message: message}
		}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// AsType matches errors whose chain contains a T and shows that T's message.
func AsType[T error]() Matcher {
	return func(err error) (string, bool) {
		var target T
		if errors.As(err, &target) {
			return target.Error(), true
		}
		return "", false
	}
}

// ErrorBody is the JSON envelope of every error response.
type ErrorBody struct {
	Errors string `json:"errors"`
	Status string `json:"status"`
}

// Respond writes info as an ErrorBody.
func Respond(c echo.Context, info HTTPErrorInfo) error {
	return c.JSON(info.Status, ErrorBody{Errors: info.Message, Status: info.StatusName()})
}

// StatusName converts a status code to its snake_case reason phrase.
func StatusName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "unknown"
	}
	text = strings.ReplaceAll(text, "-", " ")
	text = strings.ReplaceAll(text, "'", "")
	return strings.ToLower(strings.Join(strings.Fields(text), "_"))
}

// Healthz answers liveness probes.
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
