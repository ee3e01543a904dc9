package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yclaw-w26/apply-backend/internal/applications/domain"
	"github.com/yclaw-w26/apply-backend/internal/applications/repository"
)

const (
	statsCacheKey = "yclaw:stats"
	statsCacheTTL = time.Minute

	// DefaultRecentLimit is the feed size when the caller doesn't ask for one.
	DefaultRecentLimit = 10
	maxRecentLimit     = 50
)

// ApplicationService handles application submission and the read-side
// projections. Identity is always an explicit parameter; an empty userID
// means the caller is anonymous.
type ApplicationService struct {
	repo *repository.ApplicationRepository
	rdb  *redis.Client // nil disables caching
	log  *zap.Logger
}

// NewApplicationService creates a new application service.
func NewApplicationService(repo *repository.ApplicationRepository, rdb *redis.Client, log *zap.Logger) *ApplicationService {
	return &ApplicationService{
		repo: repo,
		rdb:  rdb,
		log:  log,
	}
}

// Submit creates a pending application for the user and returns its id.
// Fails with domain.ErrUnauthenticated when userID is empty and with
// domain.ErrDuplicatePending when the user already has a pending one; the
// pre-check gives the friendly path, the storage-level unique index makes
// the guarantee hold under concurrent submissions too.
func (s *ApplicationService) Submit(ctx context.Context, userID string, app *domain.Application) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}

	pending, err := s.repo.HasPending(ctx, userID)
	if err != nil {
		return "", err
	}
	if pending {
		return "", domain.ErrDuplicatePending
	}

	app.UserID = userID
	app.Status = domain.StatusPending
	app.SubmittedAt = time.Now().UnixMilli()

	if err := s.repo.Create(ctx, app); err != nil {
		return "", err
	}

	s.invalidateStats(ctx)
	s.log.Info("application submitted",
		zap.String("application_id", app.PublicID),
		zap.String("agent_type", app.AgentType),
	)
	return app.PublicID, nil
}

// GetUserApplication returns the user's most recent application. An empty
// userID (anonymous visitor) and a user who never submitted both yield
// (nil, nil) rather than an error.
func (s *ApplicationService) GetUserApplication(ctx context.Context, userID string) (*domain.Application, error) {
	if userID == "" {
		return nil, nil
	}
	return s.repo.LatestByUser(ctx, userID)
}

// GetStats returns the aggregate counts for the batch, served from the Redis
// cache when warm and recomputed from a full scan otherwise. Cache failures
// are logged and ignored; the database remains the source of truth.
func (s *ApplicationService) GetStats(ctx context.Context) (*domain.Stats, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats domain.Stats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("stats cache read failed", zap.Error(err))
		}
	}
	return s.RefreshStats(ctx)
}

// RefreshStats recomputes the aggregate from the store and rewrites the
// cache entry. The cron warmer calls this periodically.
func (s *ApplicationService) RefreshStats(ctx context.Context) (*domain.Stats, error) {
	total, accepted, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalApplications: total,
		AcceptedCount:     accepted,
		BatchName:         domain.BatchName,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
				s.log.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// GetRecentApplications returns the anonymized public feed, newest first.
// A non-positive limit falls back to the default and oversized limits are
// capped.
func (s *ApplicationService) GetRecentApplications(ctx context.Context, limit int) ([]domain.PublicApplication, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}

func (s *ApplicationService) invalidateStats(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey).Err(); err != nil {
		s.log.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
