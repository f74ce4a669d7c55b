package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/kaamsetu/backend/internal/config"
)

// RunMigrations applies pending schema migrations. Disabled via
// RUN_MIGRATIONS=false for environments where the schema is managed
// out of band.
func RunMigrations(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil || !cfg.Migrations.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// golang-migrate's postgres driver works against database/sql, so
	// migrations go through lib/pq while the application uses pgx.
	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	source := fmt.Sprintf("file://%s", filepath.ToSlash(cfg.Migrations.Path))
	migrator, err := migrate.NewWithDatabaseInstance(source, cfg.Database.Name, driver)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch err := migrator.Up(); {
	case err == nil:
		version, _, _ := migrator.Version()
		logger.Info("schema migrations applied", zap.Uint("version", version))
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema already up to date")
	default:
		return err
	}
	return nil
}
