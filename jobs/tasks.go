package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskHistoryWarmup is the task type that pre-populates history caches.
	TaskHistoryWarmup = "funnel:history_warmup"
)

// HistoryWarmupPayload scopes a warmup run to one anchor month. An empty
// anchor means the current month.
type HistoryWarmupPayload struct {
	Anchor string `json:"anchor,omitempty"`
}

// NewHistoryWarmupTask constructs an Asynq task for a warmup run.
func NewHistoryWarmupTask(payload HistoryWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskHistoryWarmup, data), nil
}
