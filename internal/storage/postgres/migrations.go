package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on startup. Statements are idempotent so re-running on
// every boot is safe.
//
// The partial unique index is what enforces the one-pending-application-per-
// user invariant: two racing submissions cannot both insert a pending row,
// whichever commits second fails with a unique violation (23505).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS applications (
		id              BIGSERIAL PRIMARY KEY,
		public_id       TEXT        NOT NULL UNIQUE,
		user_id         TEXT        NOT NULL,
		founder_name    TEXT        NOT NULL,
		founder_email   TEXT        NOT NULL,
		agent_type      TEXT        NOT NULL,
		startup_name    TEXT        NOT NULL,
		tagline         TEXT        NOT NULL,
		description     TEXT        NOT NULL,
		website         TEXT,
		problem_solving TEXT        NOT NULL,
		why_moltbots    TEXT        NOT NULL,
		traction        TEXT,
		funding_ask     TEXT        NOT NULL,
		status          TEXT        NOT NULL DEFAULT 'pending',
		submitted_at    BIGINT      NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_applications_user
		ON applications (user_id, submitted_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_applications_status
		ON applications (status);`,
	`CREATE INDEX IF NOT EXISTS idx_applications_submitted
		ON applications (submitted_at DESC);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_applications_pending_per_user
		ON applications (user_id) WHERE status = 'pending';`,
}

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
