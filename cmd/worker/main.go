package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/funnelboard/funnelboard/internal/app"
	"github.com/funnelboard/funnelboard/internal/dashboard"
	"github.com/funnelboard/funnelboard/internal/funnel"
	"github.com/funnelboard/funnelboard/internal/platform/cache"
	"github.com/funnelboard/funnelboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	dataset := funnel.NewDataset(cfg.FunnelSeed)
	historyCache := dashboard.NewCache(redisClient, cfg.HistoryCacheTTL)
	dashboardService := dashboard.NewService(dataset, historyCache)

	warmupJob := jobs.NewHistoryWarmupJob(dashboardService, logger, nil)

	warmupTask, err := jobs.NewHistoryWarmupTask(jobs.HistoryWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskHistoryWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "45 0 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	// Warm caches immediately on startup so a deploy does not wait for the
	// nightly schedule.
	client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := client.EnqueueHistoryWarmup(ctx, jobs.HistoryWarmupPayload{}); err != nil {
		logger.Warn("enqueue startup warmup", slog.Any("error", err))
	}
	if err := client.Close(); err != nil {
		logger.Warn("jobs client close", slog.Any("error", err))
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
