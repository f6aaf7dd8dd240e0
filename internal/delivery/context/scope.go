// Package context carries per-request values (request id, scoped logger and
// the verified principal) across the echo handler chain and into use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID   ContextKey = "request_id"
	KeyLogger      ContextKey = "logger"
	KeyPrincipalID ContextKey = "principal_id"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

func valueOf[T comparable](ctx context.Context, key ContextKey) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)

	return v, ok && v != zero
}

// GetRequestID returns the request id stored on the echo context. When the
// request id middleware has not run, an id is generated and stored so every
// later call within the request agrees.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	id := uuid.NewString()
	SetRequestID(c, id)

	return id
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, falling back when the
// context carries none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := valueOf[*slog.Logger](ctx, KeyLogger); ok {
		return logger
	}

	return fallback
}

// SetPrincipalID records the verified principal on both echo.Context and the
// request context so use cases see the same identity as handlers.
func SetPrincipalID(c echo.Context, principalID uuid.UUID) {
	c.Set(string(KeyPrincipalID), principalID)
	c.SetRequest(c.Request().WithContext(WithPrincipalID(c.Request().Context(), principalID)))
}

// GetPrincipalID returns the principal set by the authorization gate.
func GetPrincipalID(c echo.Context) (uuid.UUID, bool) {
	principalID, ok := c.Get(string(KeyPrincipalID)).(uuid.UUID)
	if !ok || principalID == uuid.Nil {
		return uuid.Nil, false
	}

	return principalID, true
}

func WithPrincipalID(ctx context.Context, principalID uuid.UUID) context.Context {
	return context.WithValue(ctx, KeyPrincipalID, principalID)
}

func GetPrincipalIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return valueOf[uuid.UUID](ctx, KeyPrincipalID)
}
