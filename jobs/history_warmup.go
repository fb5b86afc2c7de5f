package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/funnelboard/funnelboard/internal/funnel"
	jobmetrics "github.com/funnelboard/funnelboard/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

const anchorLayout = "2006-01"

// HistoryService is the slice of the dashboard service the warmup job needs.
type HistoryService interface {
	GetHistoryAt(ctx context.Context, employee string, anchor time.Time) ([]funnel.MonthlyKpiRow, error)
}

// HistoryWarmupJob pre-populates the monthly history cache for every
// employee so the first dashboard view of the day hits warm keys.
type HistoryWarmupJob struct {
	Dashboard HistoryService
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewHistoryWarmupJob wires dependencies for the warmup handler.
func NewHistoryWarmupJob(dashboard HistoryService, logger *slog.Logger, metrics *jobmetrics.Metrics) *HistoryWarmupJob {
	return &HistoryWarmupJob{
		Dashboard: dashboard,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes history warmup tasks.
func (j *HistoryWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("history warmup: handler not configured")
	}
	var payload HistoryWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	anchor := j.now()
	if payload.Anchor != "" {
		parsed, err := time.Parse(anchorLayout, payload.Anchor)
		if err != nil {
			return asynq.SkipRetry
		}
		anchor = parsed
	}

	tracker := j.metrics().Track(TaskHistoryWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("anchor", anchor.Format(anchorLayout)))
	logger.Info("starting history warmup")

	start := j.now()
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(3)
	for _, employee := range funnel.Employees {
		employee := employee
		group.Go(func() error {
			warmCtx, cancel := context.WithTimeout(groupCtx, 10*time.Second)
			defer cancel()
			if _, err := j.Dashboard.GetHistoryAt(warmCtx, employee, anchor); err != nil {
				logger.Error("warm employee history", slog.String("employee", employee), slog.Any("error", err))
				return err
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		resultErr = err
		return resultErr
	}

	logger.Info("completed history warmup", slog.Int("employees", len(funnel.Employees)), slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *HistoryWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskHistoryWarmup))
	}
	return slog.Default().With(slog.String("job", TaskHistoryWarmup))
}

func (j *HistoryWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *HistoryWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
