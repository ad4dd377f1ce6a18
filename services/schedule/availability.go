package schedule

import (
	"context"
	"fmt"

	commitmentRepo "skischool/database/repository/commitment"
	"skischool/models"
	"skischool/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Calculator answers availability questions for one monitor or client by
// combining the three commitment sources.
type Calculator struct {
	Repo   commitmentRepo.CommitmentRepository
	Hours  Hours // used when a school does not configure its own
	Logger *zap.Logger
}

// Availability is the outcome of IsFree. Conflict is the first clashing
// commitment in private, collective, nwd order.
type Availability struct {
	Free     bool      `json:"free"`
	Conflict *Interval `json:"conflict,omitempty"`
}

func (c *Calculator) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return utils.GetLogger()
}

// IsFree reports whether subject can take window. A window owned by an
// existing commitment is not compared against that commitment.
func (c *Calculator) IsFree(ctx context.Context, subject models.Subject, window Interval, scope *models.School) (Availability, error) {
	commitments, err := c.Commitments(ctx, subject, scope, Span(window))
	if err != nil {
		return Availability{}, err
	}
	for _, iv := range commitments {
		if clashes(subject, window, iv) {
			conflict := iv
			return Availability{Free: false, Conflict: &conflict}, nil
		}
	}
	return Availability{Free: true}, nil
}

// Conflicts returns every commitment clashing with window, for callers that
// need the full picture rather than the first hit.
func (c *Calculator) Conflicts(ctx context.Context, subject models.Subject, window Interval, scope *models.School) ([]Interval, error) {
	commitments, err := c.Commitments(ctx, subject, scope, Span(window))
	if err != nil {
		return nil, err
	}
	var out []Interval
	for _, iv := range commitments {
		if clashes(subject, window, iv) {
			out = append(out, iv)
		}
	}
	return out, nil
}

// clashes applies the overlap rule plus the sibling-subgroup rule.
func clashes(subject models.Subject, window, existing Interval) bool {
	return siblingSeat(subject, window, existing) || Overlaps(window, existing)
}

// siblingSeat reports the client rule that a seat in a sibling subgroup of the
// same course group is a conflict whatever the times.
func siblingSeat(subject models.Subject, window, existing Interval) bool {
	return subject.Role == models.RoleClient &&
		existing.kind == models.KindCollective &&
		window.groupID != "" &&
		existing.groupID == window.groupID &&
		!window.sameOwner(existing)
}

// Commitments fetches and normalizes every commitment of subject inside span.
// The sources are fetched concurrently and joined before normalization.
// Clients have no nwd source.
func (c *Calculator) Commitments(ctx context.Context, subject models.Subject, scope *models.School, span models.TimeWindow) ([]Interval, error) {
	if subject.Role != models.RoleMonitor && subject.Role != models.RoleClient {
		return nil, fmt.Errorf("%w %q", ErrUnknownRole, subject.Role)
	}
	hours, err := HoursFor(scope, c.Hours)
	if err != nil {
		return nil, err
	}
	schoolID := ""
	if scope != nil {
		schoolID = scope.ID
	}

	var (
		privates    []models.PrivateBooking
		collectives []models.CollectiveSession
		blocks      []models.NwdBlock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := c.Repo.FetchPrivateBookings(gctx, subject, schoolID, span)
		if err != nil {
			return fmt.Errorf("fetch private bookings: %w", err)
		}
		privates = rows
		return nil
	})
	g.Go(func() error {
		rows, err := c.Repo.FetchCollectiveSessions(gctx, subject, schoolID, span)
		if err != nil {
			return fmt.Errorf("fetch collective sessions: %w", err)
		}
		collectives = rows
		return nil
	})
	if subject.Role == models.RoleMonitor {
		g.Go(func() error {
			rows, err := c.Repo.FetchNwdBlocks(gctx, subject.ID, schoolID, span)
			if err != nil {
				return fmt.Errorf("fetch nwd blocks: %w", err)
			}
			blocks = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := Normalizer{Hours: hours}
	out := make([]Interval, 0, len(privates)+len(collectives)+len(blocks))

	for _, b := range privates {
		iv, err := n.PrivateBooking(b)
		if err != nil {
			if skippable(err) {
				c.skip(err, models.KindPrivate, b.ID)
				continue
			}
			return nil, err
		}
		out = append(out, iv)
	}
	for _, s := range collectives {
		iv, err := n.CollectiveSession(s)
		if err != nil {
			if skippable(err) {
				c.skip(err, models.KindCollective, s.ID)
				continue
			}
			return nil, err
		}
		out = append(out, iv)
	}
	for _, b := range blocks {
		ivs, err := n.NwdBlock(b)
		if err != nil {
			if skippable(err) {
				c.skip(err, models.KindNWD, b.ID)
				continue
			}
			return nil, err
		}
		out = append(out, ivs...)
	}
	return out, nil
}

// skip logs a row the engine ignores. A skipped row may hide a real conflict.
func (c *Calculator) skip(err error, kind models.CommitmentKind, id string) {
	c.logger().Warn("skipping commitment row",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.Error(err))
}
