package main

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/funnelboard/funnelboard/cmd/funnelboard/cli"
	"github.com/funnelboard/funnelboard/internal/app"
	"github.com/funnelboard/funnelboard/internal/dashboard"
	dashhttp "github.com/funnelboard/funnelboard/internal/dashboard/http"
	"github.com/funnelboard/funnelboard/internal/dashboard/svg"
	"github.com/funnelboard/funnelboard/internal/funnel"
	"github.com/funnelboard/funnelboard/internal/observability"
	"github.com/funnelboard/funnelboard/internal/platform/cache"
	"github.com/funnelboard/funnelboard/internal/shared"
	"github.com/funnelboard/funnelboard/internal/view"
	"github.com/funnelboard/funnelboard/jobs"
)

type funnelRenderer struct{}

func (funnelRenderer) Funnel(width, height int, segments []svg.FunnelSegment, opts svg.FunnelOpts) (template.HTML, error) {
	return svg.Funnel(width, height, segments, opts)
}

type trendRenderer struct{}

func (trendRenderer) Line(width, height int, series []float64, labels []string, opts svg.LineOpts) (template.HTML, error) {
	return svg.Line(width, height, series, labels, opts)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	if len(os.Args) > 1 && os.Args[1] == "enqueue-warmup" {
		os.Exit(runEnqueueWarmup(ctx, cfg, logger))
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "funnelboard_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	dataset := funnel.NewDataset(cfg.FunnelSeed)
	historyCache := dashboard.NewCache(redisClient, cfg.HistoryCacheTTL)
	dashboardService := dashboard.NewService(dataset, historyCache)
	dashboardHandler := dashhttp.NewHandler(logger, dashboardService, templates, funnelRenderer{}, trendRenderer{}, csrfManager)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AppShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func runEnqueueWarmup(ctx context.Context, cfg *app.Config, logger *slog.Logger) int {
	jobsCLI, err := cli.NewJobsCLI(cfg.RedisAddr)
	if err != nil {
		logger.Error("init jobs cli", slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := jobsCLI.Close(); err != nil {
			logger.Warn("jobs cli close", slog.Any("error", err))
		}
	}()

	info, err := jobsCLI.Trigger(ctx, jobs.TaskHistoryWarmup)
	if err != nil {
		logger.Error("enqueue warmup", slog.Any("error", err))
		return 1
	}
	fmt.Printf("enqueued %s id=%s queue=%s\n", jobs.TaskHistoryWarmup, info.ID, info.Queue)
	return 0
}
