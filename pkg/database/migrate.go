package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DefaultMigrationsPath points at the migrations directory of the repository.
const DefaultMigrationsPath = "file://migrations"

// Migrator applies the schema migrations of the draft store.
type Migrator struct {
	db     *sql.DB
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewMigrator opens a temporary database/sql connection through the pgx stdlib
// driver, so migrations share the driver of the main pool.
func NewMigrator(databaseURL, migrationsPath string, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if migrationsPath == "" {
		migrationsPath = DefaultMigrationsPath
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database connection for migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return &Migrator{db: db, m: m, logger: logger}, nil
}

// Up applies steps migrations, or all pending ones when steps is 0.
func (mg *Migrator) Up(steps int) error {
	var err error
	if steps > 0 {
		err = mg.m.Steps(steps)
	} else {
		err = mg.m.Up()
	}
	return mg.report("up", err)
}

// Down reverts steps migrations, or all of them when steps is 0.
func (mg *Migrator) Down(steps int) error {
	var err error
	if steps > 0 {
		err = mg.m.Steps(-steps)
	} else {
		err = mg.m.Down()
	}
	return mg.report("down", err)
}

// Version reports the current schema version.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (mg *Migrator) report(direction string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("No new migrations to apply.", slog.String("direction", direction))
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply %s migrations: %w", direction, err)
	}
	mg.logger.Info("Database migrations applied successfully.", slog.String("direction", direction))
	return nil
}

// Close releases the migration source and database connection.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	closeErr := mg.db.Close()
	return errors.Join(sourceErr, dbErr, closeErr)
}
