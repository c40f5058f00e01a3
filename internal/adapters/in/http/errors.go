package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes of the response envelope.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInvalid    = "INVALID_STATE"
	CodeUpstream   = "UPSTREAM_SERVICE_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// statusFor maps a domain or transport error to an HTTP status and envelope code.
func statusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErrorStatus(httpErr.Code)
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict, CodeInvalid
	case errs.IsValidation(err):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, errs.ErrUpstreamService), errors.Is(err, errs.ErrRetryExhausted):
		return http.StatusBadGateway, CodeUpstream
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func httpErrorStatus(code int) (int, string) {
	switch {
	case code == http.StatusNotFound:
		return code, CodeNotFound
	case code >= http.StatusInternalServerError:
		return code, CodeInternal
	default:
		return code, CodeValidation
	}
}

// messageFor hides internal failures from clients.
func messageFor(err error, code string) string {
	if code == CodeInternal {
		return "internal server error"
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
		return http.StatusText(httpErr.Code)
	}
	return err.Error()
}

// NewErrorHandler renders every error returned by a handler as an ErrorResponse.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Int("status", status),
				slog.Any("error", err))
		}

		body := servers.ErrorResponse{
			Success: false,
			Error: servers.Error{
				Code:    code,
				Message: messageFor(err, code),
			},
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", writeErr))
		}
	}
}
