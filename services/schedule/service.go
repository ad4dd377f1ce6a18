package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	commitmentRepo "skischool/database/repository/commitment"
	monitorRepo "skischool/database/repository/monitor"
	"skischool/models"
	"skischool/services/tasks"
	"skischool/utils"

	"go.uber.org/zap"
)

// SlotResult is the outcome of a flexible search. An exhausted search is
// Found=false, not an error.
type SlotResult struct {
	Found bool      `json:"found"`
	Slot  *Interval `json:"slot,omitempty"`
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Calculator *Calculator
	Filter     *EligibilityFilter
	Cascade    *Cascade
	Assigner   *Assigner
	Driller    *Driller
	Monitors   monitorRepo.MonitorRepository
	Tasks      TaskEnqueuer // nil disables EnqueueRevalidate
}

// NewDefaultScheduleService wires the engine components around one repository.
func NewDefaultScheduleService(
	repo commitmentRepo.CommitmentRepository,
	monitors monitorRepo.MonitorRepository,
	locker AssignmentLocker,
	taskClient TaskEnqueuer,
	hours Hours,
	lockTTL time.Duration,
	logger *zap.Logger,
) *DefaultScheduleService {
	calc := &Calculator{Repo: repo, Hours: hours, Logger: logger}
	cascade := &Cascade{Calculator: calc}
	assigner := &Assigner{Calculator: calc, Cascade: cascade, Locker: locker, LockTTL: lockTTL}
	return &DefaultScheduleService{
		Calculator: calc,
		Filter:     &EligibilityFilter{Calculator: calc},
		Cascade:    cascade,
		Assigner:   assigner,
		Driller:    &Driller{Repo: repo, Hours: hours, Logger: logger},
		Monitors:   monitors,
		Tasks:      taskClient,
	}
}

func (s *DefaultScheduleService) CheckAvailability(ctx context.Context, req models.AvailabilityRequest) (Availability, error) {
	start, end, err := placeOnDay(req.Date, req.StartTime, req.EndTime, req.Duration)
	if err != nil {
		return Availability{}, err
	}
	window, err := Window(start, end)
	if err != nil {
		return Availability{}, err
	}
	if req.Exclude != nil {
		window = window.Owned(*req.Exclude)
	}
	if req.CourseGroupID != "" {
		window = window.InFamily("", req.CourseGroupID)
	}
	return s.Calculator.IsFree(ctx, req.Subject, window, scopeFor(req.SchoolID))
}

func (s *DefaultScheduleService) SearchSlot(ctx context.Context, req models.SlotSearchRequest) (*SlotResult, error) {
	day, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, newMalformedTimeError("date", req.Date, err)
	}
	hourMin, err := utils.ParseClock(req.HourMin)
	if err != nil {
		return nil, newMalformedTimeError("hour_min", req.HourMin, err)
	}
	hourMax, err := utils.ParseClock(req.HourMax)
	if err != nil {
		return nil, newMalformedTimeError("hour_max", req.HourMax, err)
	}
	duration, err := utils.ParseClockDuration(req.Duration)
	if err != nil {
		return nil, newMalformedTimeError("duration", req.Duration, err)
	}

	slot, ok, err := s.Calculator.FindFlexibleSlot(ctx, req.Subject, scopeFor(req.SchoolID), day, hourMin, hourMax, duration, req.Exclude, req.CourseGroupID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &SlotResult{Found: false}, nil
	}
	return &SlotResult{Found: true, Slot: &slot}, nil
}

func (s *DefaultScheduleService) EligibleMonitors(ctx context.Context, req models.EligibleMonitorsRequest) ([]models.MonitorCandidate, error) {
	candidates, err := s.Monitors.SearchCandidates(ctx, monitorRepo.MonitorSearchCriteria{
		SchoolID:  req.SchoolID,
		StationID: req.StationID,
		SportID:   req.SportID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load monitor candidates: %w", err)
	}
	return s.Filter.Filter(ctx, candidates, req.EligibilityQuery)
}

// requireMonitor fails with the repository's not-found error when the monitor does not exist.
func (s *DefaultScheduleService) requireMonitor(ctx context.Context, monitorID string) error {
	if _, err := s.Monitors.GetByID(ctx, monitorID); err != nil {
		return fmt.Errorf("failed to load monitor %s: %w", monitorID, err)
	}
	return nil
}

func (s *DefaultScheduleService) AssignMonitor(ctx context.Context, req models.AssignRequest) (*AssignResult, error) {
	if err := s.requireMonitor(ctx, req.MonitorID); err != nil {
		return nil, err
	}
	return s.Assigner.AssignMonitor(ctx, req.MonitorID, req.Target, scopeFor(req.SchoolID), req.Force)
}

// CheckAssignment lists what AssignMonitor with force would unassign, without writing.
func (s *DefaultScheduleService) CheckAssignment(ctx context.Context, req models.AssignRequest) ([]CascadeConflict, error) {
	if err := s.requireMonitor(ctx, req.MonitorID); err != nil {
		return nil, err
	}
	a, err := s.Calculator.ResolveAssignment(ctx, req.MonitorID, req.Target, scopeFor(req.SchoolID))
	if err != nil {
		return nil, err
	}
	return s.Cascade.Conflicts(ctx, a)
}

func (s *DefaultScheduleService) DrillNwd(ctx context.Context, blockID string, req models.DrillRequest) ([]models.NwdBlock, error) {
	return s.Driller.DrillAndPersist(ctx, blockID, req.Date, req.GapStart, req.GapEnd, scopeFor(req.SchoolID))
}

// EnqueueRevalidate schedules an asynchronous Revalidate and returns the task id.
func (s *DefaultScheduleService) EnqueueRevalidate(ctx context.Context, p models.RevalidatePayload) (string, error) {
	if s.Tasks == nil {
		return "", errors.New("task queue is not configured")
	}
	task, opts, err := tasks.NewRevalidateTask(p)
	if err != nil {
		return "", fmt.Errorf("failed to build revalidate task: %w", err)
	}
	info, err := s.Tasks.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue revalidate task: %w", err)
	}
	return info.ID, nil
}

// Revalidate re-runs the cascade for a target whose dates changed.
func (s *DefaultScheduleService) Revalidate(ctx context.Context, p models.RevalidatePayload) ([]CascadeConflict, error) {
	return s.Cascade.Revalidate(ctx, p.MonitorID, p.Target, scopeFor(p.SchoolID))
}
