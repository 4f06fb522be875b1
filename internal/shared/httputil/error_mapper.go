package httputil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorMapping represents a single domain error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// ErrorMapper maps domain errors to HTTP responses. Each transport builds one
// mapper with its module's sentinels so no domain error escapes as a 500 and no
// internal detail leaks to the caller.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates an ErrorMapper that treats unmatched errors as internal.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "Internal server error.",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Message: message})
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) (int, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "Request timeout."
	}
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, "Request cancelled."
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return mapping.Status, mapping.Message
		}
	}
	return m.defaultStatus, m.defaultMessage
}

// Respond maps err and writes the failure envelope. Unmatched errors are logged
// with full detail server-side and returned as the generic message.
func (m *ErrorMapper) Respond(c echo.Context, err error) error {
	status, message := m.Map(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return Fail(c, status, message)
}
