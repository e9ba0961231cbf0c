package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"peer-lending/internal/config"
	"peer-lending/internal/infrastructure/logging"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var databaseURL string
	var migrationsPath string
	var command string

	flag.StringVar(&databaseURL, "database", "", "Database URL (defaults to database.url from config)")
	flag.StringVar(&migrationsPath, "path", "migrations", "Path to migrations directory")
	flag.StringVar(&command, "command", "up", "Migration command: up, down, version, force")
	flag.Parse()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Logger)

	if databaseURL == "" {
		databaseURL = cfg.Database.URL
	}
	if databaseURL == "" {
		logger.Error("Database URL is required. Use -database flag or DATABASE_URL environment variable")
		os.Exit(1)
	}

	logger.Info("Connecting to database...", "migrations_path", migrationsPath)

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), databaseURL)
	if err != nil {
		logger.Error("Failed to create migration instance", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	if err := run(m, command, flag.Args(), logger); err != nil {
		logger.Error("Migration command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, command string, args []string, logger *slog.Logger) error {
	switch command {
	case "up":
		logger.Info("Running migrations up...")
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No migrations to run (database is up to date)")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("Migrations completed successfully")

	case "down":
		logger.Info("Rolling back migrations...")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to rollback migrations: %w", err)
		}
		logger.Info("Rollback completed successfully")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Info("Current version", "version", version, "dirty", dirty)

	case "force":
		version, err := parseForceVersion(args)
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
		logger.Info("Forced version", "version", version)

	default:
		return fmt.Errorf("unknown command: %s (use: up, down, version, force)", command)
	}
	return nil
}

func parseForceVersion(args []string) (int, error) {
	if len(args) < 1 {
		return 0, errors.New("force command requires a version number: -command force <version>")
	}
	var version int
	if _, err := fmt.Sscanf(args[0], "%d", &version); err != nil {
		return 0, fmt.Errorf("invalid version number: %w", err)
	}
	return version, nil
}
