// Package errors defines the application error taxonomy. Each AppError carries
// the HTTP status it maps to at the delivery boundary.
package errors

import (
	"net/http"

	"contacts/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy of the error with a different user-facing message.
// The copy still matches the original through errors.Is.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Is matches any BaseError sharing the same business error code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// Predefined error types
var (
	// Request validation
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrInvalidID = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ID",
		"Id is not valid",
		"",
	)

	// Account errors
	ErrEmailInUse = NewBaseError(
		http.StatusConflict,
		"EMAIL_IN_USE",
		"Email in use",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create user",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Failed to update user",
		"",
	)

	// Verification errors
	ErrAlreadyVerified = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_VERIFIED",
		"Verification has already been passed",
		"",
	)

	ErrEmailDeliveryFailed = NewBaseError(
		http.StatusBadGateway,
		"EMAIL_DELIVERY_FAILED",
		"Failed to send verification email",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email or password is wrong",
		"",
	)

	ErrNotVerified = NewBaseError(
		http.StatusUnauthorized,
		"EMAIL_NOT_VERIFIED",
		"Email is not verified",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Not authorized",
		"",
	)

	ErrNoAccess = NewBaseError(
		http.StatusUnauthorized,
		"NO_ACCESS",
		"no access",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		"Failed to issue session token",
		"",
	)

	// Contact errors
	ErrContactNotFound = NewBaseError(
		http.StatusNotFound,
		"CONTACT_NOT_FOUND",
		"Not found",
		"",
	)

	ErrEmptyUpdate = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_UPDATE",
		"Body must have at least one field",
		"",
	)

	ErrMissingFavorite = NewBaseError(
		http.StatusBadRequest,
		"MISSING_FIELD",
		"Missing field: favorite",
		"",
	)

	// Avatar errors
	ErrAvatarMissing = NewBaseError(
		http.StatusBadRequest,
		"AVATAR_MISSING",
		"Avatar file is required",
		"",
	)

	ErrAvatarInvalid = NewBaseError(
		http.StatusBadRequest,
		"AVATAR_INVALID",
		"Avatar must be a JPEG, PNG or GIF image",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Not found",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the underlying driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
