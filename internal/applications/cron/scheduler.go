package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/yclaw-w26/apply-backend/internal/applications/service"
)

// Scheduler keeps the stats cache warm so the landing page never pays for
// the full-collection scan on a cold key.
type Scheduler struct {
	svc *service.ApplicationService
	log *zap.Logger
	c   *cron.Cron
}

func NewScheduler(svc *service.ApplicationService, log *zap.Logger) *Scheduler {
	return &Scheduler{svc: svc, log: log}
}

// Start initializes cron tasks.
func (s *Scheduler) Start() {
	s.c = cron.New()

	_, err := s.c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := s.svc.RefreshStats(ctx); err != nil {
			s.log.Warn("stats refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		s.log.Error("failed to create cron job", zap.Error(err))
		return
	}

	s.log.Info("cron scheduler started", zap.String("job", "stats refresh every 5m"))
	s.c.Start()
}

// Stop halts scheduled jobs. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}
