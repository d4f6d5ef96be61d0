package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"cowork/config"
	"cowork/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// DatabaseURL builds the migrate DSN for the write node.
func DatabaseURL(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	return postgres.DSN(pg.Write, pg.Prefix, url.Values{"x-migrations-table": {pg.MigrationTable}})
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New("file://"+cfg.DB.Postgres.MigrationPath, DatabaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func run(cfg *config.Config, action string, step func(*migrate.Migrate) error) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("reading migration version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished.")

	return nil
}

// Up applies every pending migration.
func Up(cfg *config.Config) error {
	return run(cfg, "up", (*migrate.Migrate).Up)
}

// StepUp applies the next migration only.
func StepUp(cfg *config.Config) error {
	return run(cfg, "step-up", func(m *migrate.Migrate) error { return m.Steps(1) })
}

// Down rolls back the latest migration.
func Down(cfg *config.Config) error {
	return run(cfg, "down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

// Drop rolls back every migration.
func Drop(cfg *config.Config) error {
	return run(cfg, "drop", (*migrate.Migrate).Down)
}

// Version logs the current schema version without changing it.
func Version(cfg *config.Config) error {
	return run(cfg, "version", func(*migrate.Migrate) error { return nil })
}
