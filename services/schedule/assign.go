package schedule

import (
	"context"
	"fmt"
	"time"

	"skischool/models"

	"go.uber.org/zap"
)

const defaultLockTTL = 15 * time.Second

// Assigner runs the check-then-assign sequence under an AssignmentLocker.
type Assigner struct {
	Calculator *Calculator
	Cascade    *Cascade
	Locker     AssignmentLocker
	LockTTL    time.Duration
}

// AssignResult describes a completed assignment.
type AssignResult struct {
	MonitorID  string               `json:"monitorId"`
	Target     models.CommitmentRef `json:"target"`
	Unassigned []CascadeConflict    `json:"unassigned"`
}

// AssignMonitor assigns monitorID to target. Without force, any conflict
// aborts with a *ConflictError; with force the conflicting commitments are
// unassigned after the assignment is written.
func (a *Assigner) AssignMonitor(ctx context.Context, monitorID string, target models.CommitmentRef, scope *models.School, force bool) (*AssignResult, error) {
	assignment, err := a.Calculator.ResolveAssignment(ctx, monitorID, target, scope)
	if err != nil {
		return nil, err
	}

	ttl := a.LockTTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	key := LockKey(monitorID, Span(assignment.Intervals...))
	unlock, err := a.Locker.Lock(ctx, key, ttl)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(context.Background()); err != nil {
			a.Calculator.logger().Warn("failed to release assignment lock", zap.String("key", key), zap.Error(err))
		}
	}()

	// Forced assignments skip the check; Apply lists the conflicts itself.
	if !force {
		busy, err := a.Cascade.Check(ctx, assignment)
		if err != nil {
			return nil, err
		}
		if busy {
			conflicts, err := a.Cascade.Conflicts(ctx, assignment)
			if err != nil {
				return nil, err
			}
			return nil, &ConflictError{Conflicts: conflicts}
		}
	}

	if err := a.Calculator.Repo.PersistAssign(ctx, target.Kind, target.OwnerID, monitorID); err != nil {
		return nil, fmt.Errorf("assign monitor %s to %s %s: %w", monitorID, target.Kind, target.OwnerID, err)
	}

	unassigned, err := a.Cascade.Apply(ctx, assignment)
	if err != nil {
		return nil, err
	}
	return &AssignResult{MonitorID: monitorID, Target: target, Unassigned: unassigned}, nil
}
