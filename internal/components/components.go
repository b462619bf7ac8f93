package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"alertaVecino/internal/api"
	"alertaVecino/internal/api/handlers/http/system"
	"alertaVecino/internal/config"
	"alertaVecino/internal/redis"
	"alertaVecino/internal/service"
	"alertaVecino/internal/storage/postgres"
	"alertaVecino/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Scheduler  *service.Scheduler
	Dispatcher *service.Dispatcher
	DispatchQ  *redis.DispatchQueue
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		storage.Pool.Close()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	dispatchQueue := redis.NewDispatchQueue(redisClient.Client, "dispatch:queue")
	locations := redis.NewLocationStore(redisClient, cfg.Alerts.LocationTTL)
	candidateSource := redis.NewCachedCandidateSource(redisClient, storage.Candidates, cfg.Alerts.CandidateCacheTTL, logger)

	evaluator := service.NewEvaluator(
		storage.Preferences,
		locations,
		candidateSource,
		storage.Dedup,
		storage.Notifications,
		dispatchQueue,
		logger,
	)

	scheduler := service.NewScheduler(
		evaluator,
		storage.Preferences,
		logger,
		cfg.Alerts.CadenceHours,
		cfg.Alerts.EvalTimeout,
		cfg.Alerts.Workers,
	)

	dispatcher := service.NewDispatcher(logger, cfg.Dispatch, dispatchQueue)

	prefsSvc := service.NewPreferencesService(storage.Preferences, logger)
	notificationsSvc := service.NewNotificationService(storage.Notifications, logger)
	adminSvc := service.NewCandidateAdminService(storage.Candidates)
	statsSvc := service.NewStatsService(storage.Stats)

	srv := service.NewService(prefsSvc, notificationsSvc, scheduler, adminSvc, statsSvc)

	checks := map[string]system.Check{
		"postgres": storage.Pool.Ping,
		"redis": func(ctx context.Context) error {
			return redisClient.Client.Ping(ctx).Err()
		},
	}

	httpServer := api.NewServer(cfg, logger, srv, locations, checks)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Scheduler:  scheduler,
		Dispatcher: dispatcher,
		DispatchQ:  dispatchQueue,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("component shutdown started")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
