package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expectID func(t *testing.T, id string)
	}{
		{
			name:   "keeps client id",
			header: "req-123",
			expectID: func(t *testing.T, id string) {
				assert.Equal(t, "req-123", id)
			},
		},
		{
			name: "generates id when missing",
			expectID: func(t *testing.T, id string) {
				assert.Len(t, id, 36)
			},
		},
		{
			name:   "replaces oversized id",
			header: strings.Repeat("a", maxRequestIDLength+1),
			expectID: func(t *testing.T, id string) {
				assert.Len(t, id, 36)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			handler := NewRequestIDMiddleware(newJSONLogger(&buf)).Process(func(c echo.Context) error {
				seen = deliverycontext.GetRequestID(c)
				deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil).Info("inside")

				return nil
			})

			require.NoError(t, handler(c))
			tt.expectID(t, seen)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, seen, line["request_id"])
		})
	}
}

func TestAccessLogMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		handler   echo.HandlerFunc
		expectLog bool
		level     string
		status    float64
	}{
		{
			name:    "success skipped outside debug",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		},
		{
			name:      "success logged in debug",
			debug:     true,
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			expectLog: true,
			level:     "INFO",
			status:    http.StatusOK,
		},
		{
			name:      "client error logged with rendered status",
			handler:   func(echo.Context) error { return echo.NewHTTPError(http.StatusNotFound) },
			expectLog: true,
			level:     "WARN",
			status:    http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products/abc", nil), rec)
			c.SetPath("/products/:id")

			_ = NewAccessLogMiddleware(newJSONLogger(&buf), cfg).Handle(tt.handler)(c)

			if !tt.expectLog {
				assert.Empty(t, buf.String())

				return
			}

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.level, line["level"])
			assert.Equal(t, tt.status, line["status"])
			assert.Equal(t, "/products/:id", line["route"])
			assert.Equal(t, int(tt.status), rec.Code)
		})
	}
}
