// Package repository persists batch runs and receipt records. Storage is a
// convenience next to the report files, so callers treat failures here as
// non-fatal. SQLite is the default; a postgres:// DSN switches to pgx.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/fiscal-receipts/constants"
)

type Config struct {
	DSN        string // postgres DSN; empty selects SQLite
	SQLitePath string // default "fiscal-receipts.db"
}

// category is constrained to the known set; an unknown value fails the write.
var schemaDDL = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	started_at   TIMESTAMP NOT NULL,
	finished_at  TIMESTAMP NOT NULL,
	receipt_count INTEGER NOT NULL,
	grand_total_centavos BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS receipts (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	file_name  TEXT NOT NULL,
	cnpj       TEXT,
	company_name TEXT,
	activity   TEXT,
	amount_centavos BIGINT NOT NULL,
	category   TEXT NOT NULL CHECK (category IN ('%s')),
	error      TEXT,
	processed_at TIMESTAMP NOT NULL
);`, strings.Join(constants.AsStringSlice(), "', '"))

// Open connects, pings and ensures the schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	driver, dsn := resolveDriver(cfg)
	logger.Info("storage.open", "driver", driver)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

// IsPostgres reports whether the config selects the pgx driver. Placeholder
// syntax differs between the two drivers, so repositories need to know.
func IsPostgres(cfg Config) bool {
	driver, _ := resolveDriver(cfg)
	return driver == "pgx"
}

func resolveDriver(cfg Config) (driver, dsn string) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return "pgx", cfg.DSN
	}
	path := cfg.SQLitePath
	if path == "" {
		path = "fiscal-receipts.db"
	}
	return "sqlite", path
}
