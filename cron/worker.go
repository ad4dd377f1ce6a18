package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skischool/models"
	"skischool/services/schedule"
	"skischool/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Revalidator is the part of the schedule service the worker runs.
type Revalidator interface {
	Revalidate(ctx context.Context, p models.RevalidatePayload) ([]schedule.CascadeConflict, error)
}

// NewRevalidateMux routes schedule:revalidate tasks to svc.
func NewRevalidateMux(svc Revalidator, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScheduleRevalidate, handleRevalidateTask(svc, logger))
	return mux
}

// InitRevalidateWorker runs the async worker in background and returns the
// server so the caller can shut it down.
func InitRevalidateWorker(redisOpts asynq.RedisClientOpt, svc Revalidator, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewRevalidateMux(svc, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("[RevalidateWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Warn("[RevalidateWorker] failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[RevalidateWorker] max retry attempts reached, worker disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleRevalidateTask(svc Revalidator, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRevalidatePayload(task)
		if err != nil {
			logger.Error("[RevalidateHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("invalid revalidate payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.MonitorID == "" || p.Target.OwnerID == "" {
			return fmt.Errorf("revalidate payload lacks monitor or target: %w", asynq.SkipRetry)
		}

		unassigned, err := svc.Revalidate(ctx, p)
		if errors.Is(err, schedule.ErrUnsupportedKind) || errors.Is(err, schedule.ErrUnknownRole) {
			logger.Error("[RevalidateHandler] unusable payload", zap.String("kind", string(p.Target.Kind)), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err != nil {
			logger.Error("[RevalidateHandler] revalidation failed",
				zap.String("monitorID", p.MonitorID),
				zap.String("ownerID", p.Target.OwnerID),
				zap.Error(err))
			return err
		}

		logger.Info("[RevalidateHandler] revalidated",
			zap.String("monitorID", p.MonitorID),
			zap.String("kind", string(p.Target.Kind)),
			zap.String("ownerID", p.Target.OwnerID),
			zap.Int("unassigned", len(unassigned)))
		return nil
	}
}
