// Package context carries request-scoped values (request id, logger and the
// authenticated user) across echo handlers and the usecase layer.
package context

import (
	"context"
	"log/slog"

	"contacts/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyUser is the key for the user resolved by the auth middleware.
	KeyUser ContextKey = "user"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns the request ID, or "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// WithUser returns a new context carrying the authenticated user.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, KeyUser, user)
}

// GetUser returns the authenticated user, or nil on public routes.
func GetUser(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(KeyUser).(*entity.User); ok {
		return user
	}

	return nil
}

// SetUser stores the authenticated user on the echo context.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyUser), user)
}

// GetUserFromEcho returns the user stored by SetUser, or nil.
func GetUserFromEcho(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyUser)).(*entity.User); ok {
		return user
	}

	return nil
}
