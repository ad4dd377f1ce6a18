package models

import "time"

// NwdBlock is a monitor-declared unavailability (vacation, other commitment).
type NwdBlock struct {
	ID          string    `bson:"id" json:"id"`
	MonitorID   string    `bson:"monitor_id" json:"monitor_id"`
	SchoolID    string    `bson:"school_id" json:"school_id"`
	StartDate   string    `bson:"start_date" json:"start_date"` // "2024-02-01"
	EndDate     string    `bson:"end_date" json:"end_date"`     // inclusive
	StartTime   string    `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime     string    `bson:"end_time,omitempty" json:"end_time,omitempty"`
	FullDay     bool      `bson:"full_day" json:"full_day"`
	Subtype     string    `bson:"subtype" json:"subtype"` // e.g. "holiday", "blocked"
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Color       string    `bson:"color,omitempty" json:"color,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
