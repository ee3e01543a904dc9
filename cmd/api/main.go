package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/yclaw-w26/apply-backend/config"
	cronjob "github.com/yclaw-w26/apply-backend/internal/applications/cron"
	"github.com/yclaw-w26/apply-backend/internal/applications/repository"
	"github.com/yclaw-w26/apply-backend/internal/applications/service"
	"github.com/yclaw-w26/apply-backend/internal/auth"
	"github.com/yclaw-w26/apply-backend/internal/bootstrap"
	"github.com/yclaw-w26/apply-backend/internal/cache"
	"github.com/yclaw-w26/apply-backend/internal/logger"
)

const serviceName = "yclaw-apply-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	defer log.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer db.Close()

	// Redis only serves the stats cache; the portal stays up without it.
	rdb, err := cache.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, stats caching disabled", zap.Error(err))
		rdb = nil
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatal("firebase init failed", zap.Error(err))
	}

	appRepo := repository.NewApplicationRepository(db)
	appSvc := service.NewApplicationService(appRepo, rdb, log)

	scheduler := cronjob.NewScheduler(appSvc, log)
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          db,
		Auth:        authClient,
		Apps:        appSvc,
		Log:         log,
	})

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
