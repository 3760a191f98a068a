// Package response renders HTTP bodies. Successful responses carry the bare
// payload; failures use the error envelope with the request id.
package response

import (
	"net/http"

	deliverycontext "contacts/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// MessageBody is the payload of endpoints that only report an outcome.
type MessageBody struct {
	Message string `json:"message"`
}

// Success writes data as the whole response body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Message writes {"message": msg}.
func Message(c echo.Context, statusCode int, msg string) error {
	return c.JSON(statusCode, MessageBody{Message: msg})
}

// NoContent writes an empty response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= 500 || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
