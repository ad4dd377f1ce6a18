package schedule

import (
	"context"
	"time"

	"skischool/models"
	"skischool/utils"
)

// slotStep is the granularity of the flexible search.
const slotStep = time.Minute

// FindSlot slides a duration-long window minute by minute from date@hourMin
// until it no longer fits before date@hourMax, and returns the first position
// that overlaps none of conflicts. Any single conflict longer than duration
// blocks the search outright.
func FindSlot(conflicts []Interval, date time.Time, hourMin, hourMax, duration time.Duration) (Interval, bool) {
	if duration <= 0 {
		return Interval{}, false
	}
	for _, c := range conflicts {
		if c.Duration() > duration {
			return Interval{}, false
		}
	}

	limit := utils.At(date, hourMax)
	start := utils.At(date, hourMin)
	for end := start.Add(duration); !end.After(limit); start, end = start.Add(slotStep), end.Add(slotStep) {
		candidate := Interval{start: start, end: end}
		if _, blocked := FirstOverlap(candidate, conflicts); !blocked {
			return candidate, true
		}
	}
	return Interval{}, false
}

// HasValidSlot reports whether FindSlot succeeds.
func HasValidSlot(conflicts []Interval, date time.Time, hourMin, hourMax, duration time.Duration) bool {
	_, ok := FindSlot(conflicts, date, hourMin, hourMax, duration)
	return ok
}

// FindFlexibleSlot runs the flexible search for subject on date. Only
// commitments touching the [hourMin, hourMax] window are considered, and the
// excluded commitment (the one being edited) is ignored. For a client seat
// request in courseGroupID, a seat in a sibling subgroup leaves no slot at all.
func (c *Calculator) FindFlexibleSlot(
	ctx context.Context,
	subject models.Subject,
	scope *models.School,
	date time.Time,
	hourMin, hourMax, duration time.Duration,
	exclude *models.CommitmentRef,
	courseGroupID string,
) (Interval, bool, error) {
	window, err := Window(utils.At(date, hourMin), utils.At(date, hourMax))
	if err != nil {
		return Interval{}, false, err
	}
	if exclude != nil {
		window = window.Owned(*exclude)
	}
	if courseGroupID != "" {
		window = window.InFamily("", courseGroupID)
	}

	commitments, err := c.Commitments(ctx, subject, scope, Span(window))
	if err != nil {
		return Interval{}, false, err
	}
	var blocking []Interval
	for _, iv := range commitments {
		if siblingSeat(subject, window, iv) {
			return Interval{}, false, nil
		}
		if clashes(subject, window, iv) {
			blocking = append(blocking, iv)
		}
	}

	slot, ok := FindSlot(blocking, date, hourMin, hourMax, duration)
	return slot, ok, nil
}
