package models

// AvailabilityRequest asks whether a subject can take one time range.
// The range ends at EndTime, or StartTime + Duration when EndTime is empty.
type AvailabilityRequest struct {
	Subject       Subject        `json:"subject"`
	SchoolID      string         `json:"school_id"`
	Date          string         `json:"date" binding:"required"`
	StartTime     string         `json:"start_time" binding:"required"`
	EndTime       string         `json:"end_time"`
	Duration      string         `json:"duration"`
	CourseGroupID string         `json:"course_group_id,omitempty"` // seat requests by a client
	Exclude       *CommitmentRef `json:"exclude,omitempty"`
}

// SlotSearchRequest asks for the first free start inside an hour window.
type SlotSearchRequest struct {
	Subject       Subject        `json:"subject"`
	SchoolID      string         `json:"school_id"`
	Date          string         `json:"date" binding:"required"`
	HourMin       string         `json:"hour_min" binding:"required"`
	HourMax       string         `json:"hour_max" binding:"required"`
	Duration      string         `json:"duration" binding:"required"`
	CourseGroupID string         `json:"course_group_id,omitempty"` // seat requests by a client
	Exclude       *CommitmentRef `json:"exclude,omitempty"`
}

// EligibleMonitorsRequest searches a school's monitors for a lesson.
type EligibleMonitorsRequest struct {
	EligibilityQuery
	StationID string `json:"station_id,omitempty"`
}

// AssignRequest assigns a monitor to a private lesson or a subgroup.
// With Force, conflicting commitments are unassigned instead of refusing.
type AssignRequest struct {
	MonitorID string        `json:"monitor_id" binding:"required"`
	Target    CommitmentRef `json:"target"`
	SchoolID  string        `json:"school_id"`
	Force     bool          `json:"force"`
}

// DrillRequest carves an available gap out of one day of an nwd block.
type DrillRequest struct {
	Date     string `json:"date" binding:"required"`
	GapStart string `json:"gap_start" binding:"required"`
	GapEnd   string `json:"gap_end" binding:"required"`
	SchoolID string `json:"school_id"`
}

// RevalidatePayload is the body of a schedule:revalidate task, enqueued
// after a target's dates were edited.
type RevalidatePayload struct {
	MonitorID string        `json:"monitor_id" binding:"required"`
	Target    CommitmentRef `json:"target"`
	SchoolID  string        `json:"school_id"`
}
