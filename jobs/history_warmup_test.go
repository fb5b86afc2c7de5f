package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/funnelboard/funnelboard/internal/dashboard"
	"github.com/funnelboard/funnelboard/internal/funnel"
	jobmetrics "github.com/funnelboard/funnelboard/internal/jobs"
	_ "github.com/funnelboard/funnelboard/testing"
)

func newWarmupFixture(t *testing.T) (*HistoryWarmupJob, *miniredis.Miniredis, *prometheus.Registry) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	service := dashboard.NewService(funnel.NewDataset(11), dashboard.NewCache(client, time.Minute))
	registry := prometheus.NewRegistry()
	job := NewHistoryWarmupJob(service, nil, nil)
	job.Metrics = jobmetrics.NewMetrics(registry)
	job.clock = func() time.Time {
		return time.Date(2026, time.August, 30, 1, 0, 0, 0, time.UTC)
	}
	return job, mr, registry
}

func TestHistoryWarmupPopulatesAllEmployeeCaches(t *testing.T) {
	job, mr, registry := newWarmupFixture(t)

	task, err := NewHistoryWarmupTask(HistoryWarmupPayload{})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle warmup: %v", err)
	}

	for _, employee := range funnel.Employees {
		key := "funnel:history:" + employee + ":2026-08:v1"
		if !mr.Exists(key) {
			t.Fatalf("expected warmed cache key %s", key)
		}
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() != "funnelboard_jobs_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" && label.GetValue() == "success" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected a success job run to be recorded")
	}
}

func TestHistoryWarmupExplicitAnchor(t *testing.T) {
	job, mr, _ := newWarmupFixture(t)

	task, err := NewHistoryWarmupTask(HistoryWarmupPayload{Anchor: "2026-05"})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("handle warmup: %v", err)
	}

	if !mr.Exists("funnel:history:All:2026-05:v1") {
		t.Fatalf("expected cache key anchored at the payload month")
	}
}

func TestHistoryWarmupSkipsRetryOnBadPayload(t *testing.T) {
	job, _, _ := newWarmupFixture(t)

	task := asynq.NewTask(TaskHistoryWarmup, []byte("{not-json"))
	if err := job.Handle(context.Background(), task); err != asynq.SkipRetry {
		t.Fatalf("expected SkipRetry for malformed payload, got %v", err)
	}

	badAnchor := asynq.NewTask(TaskHistoryWarmup, []byte(`{"anchor":"nonsense"}`))
	if err := job.Handle(context.Background(), badAnchor); err != asynq.SkipRetry {
		t.Fatalf("expected SkipRetry for malformed anchor, got %v", err)
	}
}
