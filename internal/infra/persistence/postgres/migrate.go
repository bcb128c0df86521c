package postgres

import (
	"database/sql"
	"embed"
	"log/slog"

	"notes/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator is the subset of *migrate.Migrate used to apply the schema.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator over an open connection.
type MigrationEngine func(sqlDB *sql.DB) (Migrator, error)

// DefaultEngine reads the embedded migrations and applies them through the connection's driver.
func DefaultEngine(sqlDB *sql.DB) (Migrator, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "open embedded migrations")
	}

	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "create migrator")
	}

	return m, nil
}

// Migrate applies pending migrations on db. Running it against an up-to-date schema is a no-op.
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return migrateWith(DefaultEngine, sqlDB, logger)
}

// migrateWith does not close the migrator: the postgres driver would close sqlDB with it.
func migrateWith(engine MigrationEngine, sqlDB *sql.DB, logger *slog.Logger) error {
	m, err := engine(sqlDB)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database schema is up to date")

			return nil
		}

		return errors.Wrap(err, "migration up failed")
	}

	logger.Info("Database migrations applied")

	return nil
}
