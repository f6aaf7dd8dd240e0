package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormSlogLoggerParamsFilter(t *testing.T) {
	l := &gormSlogLogger{}

	sql, params := l.ParamsFilter(context.Background(), `INSERT INTO "principals" ("display_name","password_hash") VALUES ($1,$2)`, "alice", "$2a$10$digest")
	assert.Contains(t, sql, "$2")
	assert.Nil(t, params)

	_, params = l.ParamsFilter(context.Background(), `SELECT * FROM "products" WHERE id = $1`, "p-1")
	assert.Equal(t, []any{"p-1"}, params)
}

func TestGormSlogLoggerTrace(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name     string
		debug    bool
		begin    time.Time
		err      error
		contains string
	}{
		{name: "query failure", begin: time.Now(), err: errors.New("boom"), contains: "Database query failed"},
		{name: "record not found ignored", begin: time.Now(), err: gorm.ErrRecordNotFound},
		{name: "slow query", begin: time.Now().Add(-time.Second), contains: "Database query slow"},
		{name: "fast query hidden outside debug", begin: time.Now()},
		{name: "fast query in debug", debug: true, begin: time.Now(), contains: "Database query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var base, scoped bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			l := newGormSlogLogger(slog.New(slog.NewTextHandler(&base, &slog.HandlerOptions{Level: slog.LevelDebug})), cfg)
			ctx := deliverycontext.WithLogger(context.Background(),
				slog.New(slog.NewTextHandler(&scoped, &slog.HandlerOptions{Level: slog.LevelDebug})))

			l.Trace(ctx, tt.begin, sqlFn, tt.err)

			assert.Empty(t, base.String())
			if tt.contains == "" {
				assert.Empty(t, scoped.String())

				return
			}
			assert.Contains(t, scoped.String(), tt.contains)
		})
	}
}

func TestGormSlogLoggerLogModeSilences(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), &config.Config{}).LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	l.Error(context.Background(), "failed %s", "x")

	assert.Empty(t, buf.String())
}
