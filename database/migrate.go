package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/mysql/*.sql
var migrationsFS embed.FS

// Migrate moves the schema of the database at dsn.
//   - If targetVersion < 0, it migrates to the latest version.
//   - If targetVersion == 0, it rolls back all migrations.
//   - If targetVersion > 0, it migrates to the specified version.
func Migrate(ctx context.Context, logger gokitlog.Logger, driver, dsn string, targetVersion int) error {
	db, err := open(ctx, driver, dsn, true)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var instance migratedb.Driver
	switch db.Dialect {
	case Postgres:
		instance, err = postgres.WithInstance(db.DB, &postgres.Config{})
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL migrate driver: %w", err)
		}
	case MySQL:
		instance, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
		if err != nil {
			return fmt.Errorf("failed to create MySQL migrate driver: %w", err)
		}
	}

	m, err := newMigrator(db.Dialect, instance)
	if err != nil {
		return err
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		level.Info(logger).Log("msg", "no migration needed", "version", currentVersion)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration from version %d failed: %w", currentVersion, err)
	}

	newVersion, _, _ := m.Version()
	level.Info(logger).Log("msg", "migrated", "from", currentVersion, "to", newVersion)
	return nil
}

func newMigrator(dialect Dialect, instance migratedb.Driver) (*migrate.Migrate, error) {
	source, err := MigrationSource(dialect)
	if err != nil {
		return nil, err
	}

	sourceDriver, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, string(dialect), instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// MigrationSource returns the embedded migration files for dialect.
func MigrationSource(dialect Dialect) (fs.FS, error) {
	sub, err := fs.Sub(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	return sub, nil
}
