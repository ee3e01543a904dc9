package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yclaw-w26/apply-backend/config"
	"github.com/yclaw-w26/apply-backend/internal/storage/postgres"
)

// OpenDB connects to Postgres and applies the schema.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
