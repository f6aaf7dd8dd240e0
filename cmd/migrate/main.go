package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

// Supported subcommands:
// - up:     Apply all pending migrations
// - down:   Roll back the latest migration
// - status: Print the state of every migration

func main() {
	upCmd := flag.NewFlagSet("up", flag.ExitOnError)
	downCmd := flag.NewFlagSet("down", flag.ExitOnError)
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)

	upTimeout := upCmd.Duration("timeout", 5*time.Minute, "Maximum time to spend applying migrations")
	downTimeout := downCmd.Duration("timeout", time.Minute, "Maximum time to spend rolling back")
	statusTimeout := statusCmd.Duration("timeout", 30*time.Second, "Maximum time to spend reading status")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	flags := migrateFlags{
		Up:     subcommandFlags{cmd: upCmd, timeout: upTimeout},
		Down:   subcommandFlags{cmd: downCmd, timeout: downTimeout},
		Status: subcommandFlags{cmd: statusCmd, timeout: statusTimeout},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type migrateFlags struct {
	Up     subcommandFlags
	Down   subcommandFlags
	Status subcommandFlags
}

type subcommandFlags struct {
	cmd     *flag.FlagSet
	timeout *time.Duration
}

func runSubcommand(ctx context.Context, flags *migrateFlags) error {
	var sub subcommandFlags
	switch os.Args[1] {
	case "up":
		sub = flags.Up
	case "down":
		sub = flags.Down
	case "status":
		sub = flags.Status
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}

	if err := sub.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrapf(err, "failed to parse %s flags", sub.cmd.Name())
	}

	ctx, cancel := context.WithTimeout(ctx, *sub.timeout)
	defer cancel()

	return run(ctx, sub.cmd.Name())
}

func run(ctx context.Context, subcommand string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if cfg.Postgres == nil {
		return errors.New("postgres configuration is required")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	switch subcommand {
	case "up":
		version, err := migrations.Up(ctx, logger, sqlDB)
		if err != nil {
			return err
		}
		logger.Info("Migrations applied", slog.Int64("version", version))

		return nil
	case "down":
		return migrations.Down(ctx, logger, sqlDB)
	default:
		return migrations.Status(ctx, logger, sqlDB)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate <command> [options]

Commands:
  up       Apply all pending migrations
  down     Roll back the latest migration
  status   Print the state of every migration

Options:
  -timeout duration   Maximum time for the command

Configuration is read from config/config.yaml and environment variables (POSTGRES_*).
`)
}
