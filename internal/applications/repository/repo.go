package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yclaw-w26/apply-backend/internal/applications/domain"
)

const uniqueViolation = "23505"

// ApplicationRepository provides persistence operations for applications.
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application and fills in its public id.
// The partial unique index on (user_id) WHERE status='pending' is the
// authoritative guard for the one-pending-per-user invariant; hitting it
// surfaces as domain.ErrDuplicatePending.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if app.UserID == "" {
		return fmt.Errorf("user id required")
	}

	for i := 0; i < 5; i++ {
		publicID := uuid.NewString()

		const q = `
INSERT INTO applications
  (public_id, user_id, founder_name, founder_email, agent_type,
   startup_name, tagline, description, website,
   problem_solving, why_moltbots, traction, funding_ask,
   status, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, nullif($9,''), $10, $11, nullif($12,''), $13, $14, $15)
RETURNING public_id;
`
		err := r.db.QueryRowContext(ctx, q,
			publicID, app.UserID, app.FounderName, app.FounderEmail, app.AgentType,
			app.StartupName, app.Tagline, app.Description, app.Website,
			app.ProblemSolving, app.WhyMoltbots, app.Traction, app.FundingAsk,
			app.Status, app.SubmittedAt,
		).Scan(&app.PublicID)

		if err == nil {
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "uniq_applications_pending_per_user" {
				return domain.ErrDuplicatePending
			}
			// public_id collision → retry
			continue
		}
		return err
	}

	return fmt.Errorf("failed to generate unique application id")
}

// HasPending reports whether the user currently owns a pending application.
func (r *ApplicationRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM applications WHERE user_id = $1 AND status = 'pending'
);
`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// LatestByUser returns the user's most recently submitted application, or
// nil if the user has never submitted.
func (r *ApplicationRepository) LatestByUser(ctx context.Context, userID string) (*domain.Application, error) {
	const q = `
SELECT public_id, user_id, founder_name, founder_email, agent_type,
       startup_name, tagline, description, coalesce(website, ''),
       problem_solving, why_moltbots, coalesce(traction, ''), funding_ask,
       status, submitted_at
FROM applications
WHERE user_id = $1
ORDER BY submitted_at DESC
LIMIT 1;
`
	var a domain.Application
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&a.PublicID, &a.UserID, &a.FounderName, &a.FounderEmail, &a.AgentType,
		&a.StartupName, &a.Tagline, &a.Description, &a.Website,
		&a.ProblemSolving, &a.WhyMoltbots, &a.Traction, &a.FundingAsk,
		&a.Status, &a.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Recent returns the newest applications by submission time, projected to the
// public-safe columns only. Founder and pitch fields never leave the store.
func (r *ApplicationRepository) Recent(ctx context.Context, limit int) ([]domain.PublicApplication, error) {
	const q = `
SELECT startup_name, tagline, agent_type, status, submitted_at
FROM applications
ORDER BY submitted_at DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PublicApplication, 0, limit)
	for rows.Next() {
		var p domain.PublicApplication
		if err := rows.Scan(&p.StartupName, &p.Tagline, &p.AgentType, &p.Status, &p.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Counts scans the whole collection and returns total and accepted counts.
// Fine at portal scale; revisit if the table ever grows past a batch's worth.
func (r *ApplicationRepository) Counts(ctx context.Context) (total, accepted int, err error) {
	const q = `
SELECT count(*), count(*) FILTER (WHERE status = 'accepted')
FROM applications;
`
	if err := r.db.QueryRowContext(ctx, q).Scan(&total, &accepted); err != nil {
		return 0, 0, err
	}
	return total, accepted, nil
}
