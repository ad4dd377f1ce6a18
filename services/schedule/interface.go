package schedule

import (
	"context"

	"skischool/models"

	"github.com/hibiken/asynq"
)

// ScheduleService is the entry point the handlers and the worker use.
type ScheduleService interface {
	CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (Availability, error)
	SearchSlot(ctx context.Context, req models.SlotSearchRequest) (*SlotResult, error)
	EligibleMonitors(ctx context.Context, req models.EligibleMonitorsRequest) ([]models.MonitorCandidate, error)
	AssignMonitor(ctx context.Context, req models.AssignRequest) (*AssignResult, error)
	CheckAssignment(ctx context.Context, req models.AssignRequest) ([]CascadeConflict, error)
	DrillNwd(ctx context.Context, blockID string, req models.DrillRequest) ([]models.NwdBlock, error)
	EnqueueRevalidate(ctx context.Context, p models.RevalidatePayload) (string, error)
	Revalidate(ctx context.Context, p models.RevalidatePayload) ([]CascadeConflict, error)
}

// TaskEnqueuer is the part of *asynq.Client the service needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
