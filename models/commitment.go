package models

import "time"

// CommitmentKind tags the source a commitment row came from.
type CommitmentKind string

const (
	KindPrivate    CommitmentKind = "private"
	KindCollective CommitmentKind = "collective"
	KindNWD        CommitmentKind = "nwd"
)

// Role distinguishes who a schedule query is about.
type Role string

const (
	RoleMonitor Role = "monitor"
	RoleClient  Role = "client"
)

// Subject is the monitor or client whose commitments are being checked.
type Subject struct {
	ID   string `json:"id" binding:"required"`
	Role Role   `json:"role" binding:"required,oneof=monitor client"`
}

// TimeWindow is the superset range handed to the commitment gateway.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StartDate returns the first calendar day of the window ("2006-01-02").
func (w TimeWindow) StartDate() string {
	return w.Start.Format("2006-01-02")
}

// EndDate returns the last calendar day the half-open window touches ("2006-01-02").
func (w TimeWindow) EndDate() string {
	if !w.End.After(w.Start) {
		return w.StartDate()
	}
	return w.End.Add(-time.Nanosecond).Format("2006-01-02")
}

// CommitmentRef points at one commitment row, used to exclude an entity's
// own commitment while it is being edited.
type CommitmentRef struct {
	Kind    CommitmentKind `json:"kind" binding:"required,oneof=private collective nwd"`
	OwnerID string         `json:"ownerId" binding:"required"`
}
