package context

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestGetRequestID_GeneratedOnceWithoutMiddleware(t *testing.T) {
	c := newEchoContext()

	first := GetRequestID(c)
	second := GetRequestID(c)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGetRequestID_PrefersStoredID(t *testing.T) {
	c := newEchoContext()
	SetRequestID(c, "req-42")

	assert.Equal(t, "req-42", GetRequestID(c))
}

func TestPrincipalID(t *testing.T) {
	c := newEchoContext()

	_, ok := GetPrincipalID(c)
	assert.False(t, ok)

	principalID := uuid.New()
	SetPrincipalID(c, principalID)

	got, ok := GetPrincipalID(c)
	assert.True(t, ok)
	assert.Equal(t, principalID, got)

	got, ok = GetPrincipalIDFromContext(c.Request().Context())
	assert.True(t, ok)
	assert.Equal(t, principalID, got)

	_, ok = GetPrincipalIDFromContext(WithPrincipalID(context.Background(), uuid.Nil))
	assert.False(t, ok)
}
