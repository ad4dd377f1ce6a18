package tasks

import (
	"encoding/json"
	"time"

	"skischool/models"

	"github.com/hibiken/asynq"
)

const TypeScheduleRevalidate = "schedule:revalidate"

// NewRevalidateTask builds a revalidation task. Tasks for the same monitor and
// target within the uniqueness window are deduplicated by asynq.
func NewRevalidateTask(payload models.RevalidatePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeScheduleRevalidate, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Unique(time.Minute),
	}

	return task, opts, nil
}

// ParseRevalidatePayload decodes a task produced by NewRevalidateTask.
func ParseRevalidatePayload(task *asynq.Task) (models.RevalidatePayload, error) {
	var p models.RevalidatePayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
