// Package middleware holds the API-specific echo middleware: error rendering,
// bearer authentication and path id validation.
package middleware

import (
	"log/slog"
	"net/http"

	"contacts/internal/delivery/api/response"
	deliverycontext "contacts/internal/delivery/context"
	domainerrors "contacts/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.String("code", appErr.ErrorCode()),
				slog.Any("error", err),
			)
		}

		var details any
		if d := appErr.Details(); d != "" {
			details = d
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = response.Error(c, httpErr.Code, httpErrorCode(httpErr.Code), httpErrorMessage(httpErr), nil)

		return
	}

	// Unknown failures are logged in full and never leaked to the client.
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error, please try again later")
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "HTTP_ERROR"
	}
}

func httpErrorMessage(httpErr *echo.HTTPError) string {
	if httpErr.Code == http.StatusNotFound {
		return "Not found"
	}
	if msg, ok := httpErr.Message.(string); ok {
		return msg
	}

	return http.StatusText(httpErr.Code)
}
