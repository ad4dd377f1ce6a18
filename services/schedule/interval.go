package schedule

import (
	"encoding/json"
	"time"

	"skischool/models"
)

// Interval is an immutable half-open time range tagged with the commitment
// it was derived from. Query windows carry no kind.
type Interval struct {
	start   time.Time
	end     time.Time
	kind    models.CommitmentKind
	ownerID string
	// courseID and groupID locate collective intervals inside their course family.
	courseID string
	groupID  string
}

// NewInterval builds an interval, rejecting empty or inverted ranges.
func NewInterval(start, end time.Time, kind models.CommitmentKind, ownerID string) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{start: start, end: end, kind: kind, ownerID: ownerID}, nil
}

// Window builds an untagged query interval.
func Window(start, end time.Time) (Interval, error) {
	return NewInterval(start, end, "", "")
}

func (iv Interval) Start() time.Time { return iv.start }
func (iv Interval) End() time.Time { return iv.end }
func (iv Interval) Kind() models.CommitmentKind { return iv.kind }
func (iv Interval) OwnerID() string { return iv.ownerID }
func (iv Interval) CourseID() string { return iv.courseID }
func (iv Interval) GroupID() string { return iv.groupID }
func (iv Interval) Duration() time.Duration { return iv.end.Sub(iv.start) }
func (iv Interval) Ref() models.CommitmentRef { return models.CommitmentRef{Kind: iv.kind, OwnerID: iv.ownerID} }
func (iv Interval) IsZero() bool { return iv.start.IsZero() && iv.end.IsZero() }

// Owned returns a copy tagged as belonging to ref, so that the entity's own
// commitments are excluded when it is re-checked.
func (iv Interval) Owned(ref models.CommitmentRef) Interval {
	iv.kind = ref.Kind
	iv.ownerID = ref.OwnerID
	return iv
}

// InFamily returns a copy placed inside a collective course family.
func (iv Interval) InFamily(courseID, groupID string) Interval {
	iv.courseID = courseID
	iv.groupID = groupID
	return iv
}

// sameOwner reports whether both intervals come from the same logical entity.
func (iv Interval) sameOwner(other Interval) bool {
	return iv.ownerID != "" && iv.kind == other.kind && iv.ownerID == other.ownerID
}

// Span returns the day-bounded range covering every interval, used as the
// superset window for gateway queries.
func Span(ivs ...Interval) models.TimeWindow {
	var w models.TimeWindow
	for i, iv := range ivs {
		if i == 0 || iv.start.Before(w.Start) {
			w.Start = iv.start
		}
		if i == 0 || iv.end.After(w.End) {
			w.End = iv.end
		}
	}
	if len(ivs) == 0 {
		return w
	}
	w.Start = startOfDay(w.Start)
	w.End = startOfDay(w.End.Add(-time.Nanosecond)).AddDate(0, 0, 1)
	return w
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type intervalJSON struct {
	Start    time.Time             `json:"start"`
	End      time.Time             `json:"end"`
	Kind     models.CommitmentKind `json:"kind,omitempty"`
	OwnerID  string                `json:"ownerId,omitempty"`
	CourseID string                `json:"courseId,omitempty"`
	GroupID  string                `json:"groupId,omitempty"`
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{
		Start:    iv.start,
		End:      iv.end,
		Kind:     iv.kind,
		OwnerID:  iv.ownerID,
		CourseID: iv.courseID,
		GroupID:  iv.groupID,
	})
}
