package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS login_logs (
		id            TEXT PRIMARY KEY,
		staff_id      TEXT NOT NULL,
		branch        TEXT NOT NULL,
		counter       TEXT NOT NULL DEFAULT '',
		success       BOOLEAN NOT NULL,
		details       TEXT NOT NULL DEFAULT '',
		timestamp     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		ip_address    TEXT NOT NULL DEFAULT '',
		user_agent    TEXT NOT NULL DEFAULT '',
		session_token TEXT UNIQUE,
		logged_out    BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_login_logs_staff_id ON login_logs (staff_id)`,
	`CREATE INDEX IF NOT EXISTS idx_login_logs_branch ON login_logs (branch)`,
	`CREATE INDEX IF NOT EXISTS idx_login_logs_timestamp ON login_logs (timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS price_calculations (
		id            TEXT PRIMARY KEY,
		carat         DOUBLE PRECISION NOT NULL,
		clarity       TEXT NOT NULL,
		color         TEXT NOT NULL,
		cut           TEXT NOT NULL,
		certification TEXT NOT NULL,
		price         DOUBLE PRECISION NOT NULL,
		calculated_by TEXT NOT NULL,
		timestamp     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_price_calculations_calculated_by ON price_calculations (calculated_by)`,
	`CREATE INDEX IF NOT EXISTS idx_price_calculations_timestamp ON price_calculations (timestamp DESC)`,
}

// EnsureSchema creates the two tables and their indexes when missing. The
// service owns its schema and bootstraps it on startup; there is no separate
// migration step.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
