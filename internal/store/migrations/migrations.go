// Package migrations applies the embedded PostgreSQL schema.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies every pending migration to the database at databaseURL.
func Up(databaseURL string, logger *zap.Logger) error {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("closing migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema up to date")

			return nil
		}

		return fmt.Errorf("apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("schema migrated", zap.Uint("version", version))

	return nil
}
