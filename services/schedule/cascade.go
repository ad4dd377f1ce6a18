package schedule

import (
	"context"
	"fmt"

	"skischool/models"

	"go.uber.org/zap"
)

const (
	ReasonOverlap           = "overlap"
	ReasonDuplicateInCourse = "duplicate_in_course"
)

// Assignment is a monitor's freshly confirmed commitment: a private lesson
// line or every session of a subgroup.
type Assignment struct {
	MonitorID string
	Target    models.CommitmentRef
	CourseID  string // root course, collective targets only
	Intervals []Interval
	Scope     *models.School
}

// CascadeConflict is another commitment of the monitor that the assignment invalidates.
type CascadeConflict struct {
	Interval Interval `json:"interval"`
	Reason   string   `json:"reason"`
}

// Cascade re-validates a monitor's other commitments against an assignment.
// Check and Conflicts never write; Apply clears monitor_id on every conflict.
type Cascade struct {
	Calculator *Calculator
}

// Check reports whether the assignment would invalidate any other commitment.
func (c *Cascade) Check(ctx context.Context, a Assignment) (bool, error) {
	found := false
	err := c.walk(ctx, a, func(CascadeConflict) bool {
		found = true
		return false
	})
	return found, err
}

// Conflicts lists every commitment, once per owner, that the assignment invalidates.
func (c *Cascade) Conflicts(ctx context.Context, a Assignment) ([]CascadeConflict, error) {
	var out []CascadeConflict
	err := c.walk(ctx, a, func(cc CascadeConflict) bool {
		out = append(out, cc)
		return true
	})
	return out, err
}

// Apply unassigns the monitor from every conflicting commitment and returns
// what it unassigned. Writes are last-writer-wins.
func (c *Cascade) Apply(ctx context.Context, a Assignment) ([]CascadeConflict, error) {
	conflicts, err := c.Conflicts(ctx, a)
	if err != nil {
		return nil, err
	}

	applied := make([]CascadeConflict, 0, len(conflicts))
	for _, cc := range conflicts {
		ref := cc.Interval.Ref()
		if err := c.Calculator.Repo.PersistUnassign(ctx, ref.Kind, ref.OwnerID); err != nil {
			return applied, fmt.Errorf("unassign %s %s: %w", ref.Kind, ref.OwnerID, err)
		}
		c.Calculator.logger().Info("monitor unassigned by cascade",
			zap.String("monitorID", a.MonitorID),
			zap.String("kind", string(ref.Kind)),
			zap.String("ownerID", ref.OwnerID),
			zap.String("reason", cc.Reason))
		applied = append(applied, cc)
	}
	return applied, nil
}

// Revalidate rebuilds the assignment from the stored target, for instance
// after a course's dates were edited, and applies the cascade.
func (c *Cascade) Revalidate(ctx context.Context, monitorID string, target models.CommitmentRef, scope *models.School) ([]CascadeConflict, error) {
	a, err := c.Calculator.ResolveAssignment(ctx, monitorID, target, scope)
	if err != nil {
		return nil, err
	}
	return c.Apply(ctx, a)
}

// walk visits each conflicting commitment once per owner until visit returns false.
func (c *Cascade) walk(ctx context.Context, a Assignment, visit func(CascadeConflict) bool) error {
	if len(a.Intervals) == 0 {
		return nil
	}

	subject := models.Subject{ID: a.MonitorID, Role: models.RoleMonitor}
	commitments, err := c.Calculator.Commitments(ctx, subject, a.Scope, Span(a.Intervals...))
	if err != nil {
		return err
	}

	seen := make(map[models.CommitmentRef]bool)
	for _, iv := range commitments {
		ref := iv.Ref()
		if ref == a.Target || seen[ref] {
			continue
		}
		reason, ok := a.conflictWith(iv)
		if !ok {
			continue
		}
		seen[ref] = true
		if !visit(CascadeConflict{Interval: iv, Reason: reason}) {
			return nil
		}
	}
	return nil
}

// conflictWith decides whether an existing commitment is invalidated. A
// monitor may hold only one subgroup per course, whatever the times.
func (a Assignment) conflictWith(iv Interval) (string, bool) {
	if a.Target.Kind == models.KindCollective &&
		iv.kind == models.KindCollective &&
		a.CourseID != "" &&
		iv.courseID == a.CourseID {
		return ReasonDuplicateInCourse, true
	}
	for _, t := range a.Intervals {
		if Overlaps(t, iv) {
			return ReasonOverlap, true
		}
	}
	return "", false
}

// ResolveAssignment loads the target commitment and builds its intervals.
func (c *Calculator) ResolveAssignment(ctx context.Context, monitorID string, target models.CommitmentRef, scope *models.School) (Assignment, error) {
	hours, err := HoursFor(scope, c.Hours)
	if err != nil {
		return Assignment{}, err
	}
	n := Normalizer{Hours: hours}
	a := Assignment{MonitorID: monitorID, Target: target, Scope: scope}

	switch target.Kind {
	case models.KindPrivate:
		row, err := c.Repo.FetchPrivateBookingByID(ctx, target.OwnerID)
		if err != nil {
			return Assignment{}, err
		}
		iv, err := n.PrivateBooking(*row)
		if err != nil {
			return Assignment{}, fmt.Errorf("private booking %s: %w", target.OwnerID, err)
		}
		a.Intervals = []Interval{iv}

	case models.KindCollective:
		rows, err := c.Repo.FetchSubgroupSessions(ctx, target.OwnerID)
		if err != nil {
			return Assignment{}, err
		}
		for _, s := range rows {
			iv, err := n.CollectiveSession(s)
			if err != nil {
				if skippable(err) {
					c.skip(err, models.KindCollective, s.ID)
					continue
				}
				return Assignment{}, err
			}
			if a.CourseID == "" {
				a.CourseID = s.CourseID
			}
			a.Intervals = append(a.Intervals, iv)
		}
		if len(a.Intervals) == 0 {
			return Assignment{}, NewMissingDataError("subgroup %s has no schedulable sessions", target.OwnerID)
		}

	default:
		return Assignment{}, fmt.Errorf("cannot assign a monitor to a %q commitment: %w", target.Kind, ErrUnsupportedKind)
	}
	return a, nil
}
