package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// slogGooseLogger routes goose output into slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

func withGoose(logger *slog.Logger, fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(FS)
	if logger == nil {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(slogGooseLogger{logger: logger})
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	return fn()
}

// Up applies every pending migration and returns the resulting schema version.
func Up(ctx context.Context, logger *slog.Logger, db *sql.DB) (int64, error) {
	var version int64
	err := withGoose(logger, func() error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return errors.Wrap(err, "failed to apply migrations")
		}

		var err error
		version, err = goose.GetDBVersionContext(ctx, db)

		return errors.Wrap(err, "failed to read schema version")
	})

	return version, err
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, logger *slog.Logger, db *sql.DB) error {
	return withGoose(logger, func() error {
		return errors.Wrap(goose.DownContext(ctx, db, "."), "failed to roll back migration")
	})
}

// Status logs the applied state of every embedded migration.
func Status(ctx context.Context, logger *slog.Logger, db *sql.DB) error {
	return withGoose(logger, func() error {
		return errors.Wrap(goose.StatusContext(ctx, db, "."), "failed to read migration status")
	})
}
