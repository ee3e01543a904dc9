package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yclaw-w26/apply-backend/internal/applications/domain"
	"github.com/yclaw-w26/apply-backend/internal/applications/repository"
)

func setupService(t *testing.T) (*ApplicationService, sqlmock.Sqlmock, *miniredis.Miniredis, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	svc := NewApplicationService(repository.NewApplicationRepository(db), rdb, zap.NewNop())
	return svc, mock, mr, db
}

func validFields() *domain.Application {
	return &domain.Application{
		FounderName:    "Grace Hopper",
		FounderEmail:   "grace@example.com",
		AgentType:      "Developer Tools Agent",
		StartupName:    "Compilers Inc",
		Tagline:        "Agents that write agents",
		Description:    "Self-hosting agent toolchains.",
		ProblemSolving: "Agent development is too manual.",
		WhyMoltbots:    "The only batch that gets agents.",
		FundingAsk:     "$250K",
	}
}

func TestSubmit(t *testing.T) {
	t.Run("rejects anonymous callers without touching the store", func(t *testing.T) {
		svc, mock, _, db := setupService(t)
		defer db.Close()

		_, err := svc.Submit(context.Background(), "", validFields())
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a second pending application", func(t *testing.T) {
		svc, mock, _, db := setupService(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := svc.Submit(context.Background(), "user-1", validFields())
		assert.ErrorIs(t, err, domain.ErrDuplicatePending)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates a pending application and invalidates stats", func(t *testing.T) {
		svc, mock, mr, db := setupService(t)
		defer db.Close()

		require.NoError(t, mr.Set("yclaw:stats", `{"totalApplications":1}`))

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`INSERT INTO applications`).
			WillReturnRows(sqlmock.NewRows([]string{"public_id"}).AddRow("app-uuid-1"))

		app := validFields()
		id, err := svc.Submit(context.Background(), "user-1", app)
		require.NoError(t, err)
		assert.Equal(t, "app-uuid-1", id)
		assert.Equal(t, domain.StatusPending, app.Status)
		assert.Positive(t, app.SubmittedAt)

		assert.False(t, mr.Exists("yclaw:stats"), "submit should drop the cached stats")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("allows resubmission after a decided application", func(t *testing.T) {
		// rejected/accepted history does not block: only a pending row makes
		// HasPending true, and the partial index only covers pending rows.
		svc, mock, _, db := setupService(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`INSERT INTO applications`).
			WillReturnRows(sqlmock.NewRows([]string{"public_id"}).AddRow("app-uuid-2"))

		id, err := svc.Submit(context.Background(), "user-1", validFields())
		require.NoError(t, err)
		assert.Equal(t, "app-uuid-2", id)
	})

	t.Run("surfaces a storage-level duplicate from a racing submit", func(t *testing.T) {
		svc, mock, _, db := setupService(t)
		defer db.Close()

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`INSERT INTO applications`).
			WillReturnError(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: "uniq_applications_pending_per_user",
			})

		_, err := svc.Submit(context.Background(), "user-1", validFields())
		assert.ErrorIs(t, err, domain.ErrDuplicatePending)
	})
}

func TestGetUserApplication(t *testing.T) {
	svc, mock, _, db := setupService(t)
	defer db.Close()

	t.Run("anonymous gets none without error", func(t *testing.T) {
		app, err := svc.GetUserApplication(context.Background(), "")
		require.NoError(t, err)
		assert.Nil(t, app)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetStats(t *testing.T) {
	t.Run("computes from the store and fills the cache", func(t *testing.T) {
		svc, mock, mr, db := setupService(t)
		defer db.Close()

		mock.ExpectQuery(`FILTER \(WHERE status = 'accepted'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count", "count"}).AddRow(3, 2))

		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalApplications)
		assert.Equal(t, 2, stats.AcceptedCount)
		assert.Equal(t, "W26", stats.BatchName)

		assert.True(t, mr.Exists("yclaw:stats"))

		// warm cache: no further store expectations set, so a scan would fail
		cached, err := svc.GetStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, stats, cached)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("works without redis", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		svc := NewApplicationService(repository.NewApplicationRepository(db), nil, zap.NewNop())

		mock.ExpectQuery(`FILTER \(WHERE status = 'accepted'\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count", "count"}).AddRow(1, 0))

		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalApplications)
	})
}

func TestGetRecentApplications(t *testing.T) {
	cols := []string{"startup_name", "tagline", "agent_type", "status", "submitted_at"}

	t.Run("defaults a non-positive limit", func(t *testing.T) {
		svc, mock, _, db := setupService(t)
		defer db.Close()

		mock.ExpectQuery(`LIMIT \$1`).
			WithArgs(DefaultRecentLimit).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := svc.GetRecentApplications(context.Background(), 0)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("caps oversized limits", func(t *testing.T) {
		svc, mock, _, db := setupService(t)
		defer db.Close()

		mock.ExpectQuery(`LIMIT \$1`).
			WithArgs(maxRecentLimit).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := svc.GetRecentApplications(context.Background(), 500)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
