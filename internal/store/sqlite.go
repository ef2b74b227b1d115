package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/garbagesocial/gsclient/internal/config"
	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/migrations"
)

// SchemaVersion is stamped into every envelope written by this build and
// into the app_schema_version marker row. Bump it when the persisted
// format changes; openSQLite re-stamps the marker on startup so future
// format migrations have a hook to run from.
const SchemaVersion = "2"

// New selects a store implementation based on the configured DSN:
// ":memory:" yields a non-durable map-backed store, anything else an
// SQLite-backed one at that path.
func New(cfg config.Storage, log *logger.Logger) (LocalStore, error) {
	if cfg.DSN == ":memory:" || cfg.DSN == "memory" {
		return NewMemory(cfg.DefaultExpiration, log), nil
	}
	return openSQLite(context.Background(), cfg, log)
}

func openSQLite(ctx context.Context, cfg config.Storage, log *logger.Logger) (LocalStore, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "openSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "openSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "openSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if err = migrations.Migrate(conn); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	s := newSQLiteStore(conn, cfg.DefaultExpiration, log)

	if err = s.stampSchemaVersion(ctx); err != nil {
		return nil, fmt.Errorf("stamp schema version: %w", err)
	}

	log.Debug().Str("func", "openSQLite").Str("dsn", cfg.DSN).Msg("local store opened")
	return s, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
