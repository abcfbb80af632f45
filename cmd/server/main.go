package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"anoa.com/apiplayground/internal/bootstrap"
	"anoa.com/apiplayground/internal/config"
	profileRepo "anoa.com/apiplayground/internal/modules/profile/repository"
	profileService "anoa.com/apiplayground/internal/modules/profile/service"
	searchService "anoa.com/apiplayground/internal/modules/search/service"
	"anoa.com/apiplayground/internal/server"
	"anoa.com/apiplayground/pkg/cache"
	"anoa.com/apiplayground/pkg/database"
	"anoa.com/apiplayground/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(slog.LevelInfo, false)
		return err
	}
	logger.Init(cfg.LogLevel, cfg.Production)

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	slog.Info("starting", "env", cfg.AppEnv, "production", cfg.Production)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("failed to close database", "err", err)
		}
	}()

	if err := bootstrap.Migrate(db); err != nil {
		slog.Error("failed to initialize database", "err", err)
		return err
	}
	slog.Info("profiles table ready")

	redisClient := cache.NewRedis(cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var (
		meiliSvc searchService.MeiliSearchService
		indexer  profileService.Indexer
	)
	if cfg.MeiliSearchHost != "" {
		if cfg.MeiliMasterKey == "" {
			slog.Warn("MEILI_MASTER_KEY is not set")
		}
		meiliSvc = searchService.NewMeiliSearchService(searchService.NewClient(cfg.MeiliSearchHost, cfg.MeiliMasterKey))
		indexer = meiliSvc
	} else {
		slog.Info("MEILISEARCH_HOST not set, profile search disabled")
	}

	repo := profileRepo.NewRepository(db)
	profileSvc := profileService.NewProfileService(repo, indexer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.SeedProfiles(ctx, profileSvc); err != nil {
		slog.Error("failed to seed database", "err", err)
		return err
	}

	srv := server.NewServer(cfg, profileSvc, meiliSvc, redisClient)
	return srv.Run(ctx, cfg.Addr())
}
