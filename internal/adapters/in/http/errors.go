package http

import (
	"errors"
	"net/http"

	"parcellocker/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

const (
	kindRateLimited = "rate_limited"
	kindNotFound    = "not_found"
)

var statusByKind = map[string]int{
	commands.KindValidation:          http.StatusBadRequest,
	commands.KindResidentNotFound:    http.StatusNotFound,
	commands.KindNoLockerAvailable:   http.StatusConflict,
	commands.KindIdentityMismatch:    http.StatusForbidden,
	commands.KindInvalidOrExpiredOTP: http.StatusUnauthorized,
	commands.KindAttemptsExceeded:    http.StatusLocked,
	commands.KindLocationNotFound:    http.StatusNotFound,
	commands.KindFlatAlreadyOccupied: http.StatusConflict,
	commands.KindActiveDeliveries:    http.StatusConflict,
	commands.KindConflict:            http.StatusConflict,
	commands.KindStorage:             http.StatusInternalServerError,
}

// fail renders err with its stable kind. Storage and conflict details stay
// in the log.
func (s *Server) fail(c echo.Context, err error) error {
	kind := commands.ErrorKind(err)
	status, ok := statusByKind[kind]
	if !ok {
		kind, status = commands.KindStorage, http.StatusInternalServerError
	}

	body := ErrorResponse{Kind: kind, Message: err.Error()}
	switch kind {
	case commands.KindStorage:
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		body.Message = "Something went wrong. Please try again later."
	case commands.KindConflict:
		body.Message = "The request could not be completed right now. Please retry."
		body.Retryable = true
	case commands.KindResidentNotFound:
		if errors.Is(err, commands.ErrNoActiveDelivery) {
			body.Message = "No active delivery found for these details."
		} else {
			body.Message = "Resident not found. Please check your details."
		}
	case commands.KindIdentityMismatch:
		body.Message = "The details provided do not match our records."
	}

	return c.JSON(status, body)
}

func (s *Server) badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Kind: commands.KindValidation, Message: message})
}

// HTTPErrorHandler renders echo's own errors (unknown routes, bad methods,
// panics recovered by middleware) in the same envelope.
func (s *Server) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = s.fail(c, err)
		return
	}

	kind := commands.KindStorage
	switch {
	case he.Code == http.StatusTooManyRequests:
		kind = kindRateLimited
	case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
		kind = kindNotFound
	case he.Code < http.StatusInternalServerError:
		kind = commands.KindValidation
	}

	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
		message = m
	}
	_ = c.JSON(he.Code, ErrorResponse{Kind: kind, Message: message})
}
