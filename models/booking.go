package models

import "time"

// PrivateBooking is one lesson line of a private booking. EndTime and
// Duration are alternatives; one of them must be set.
type PrivateBooking struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	SchoolID  string    `bson:"school_id" json:"school_id"`
	CourseID  string    `bson:"course_id,omitempty" json:"course_id,omitempty"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	MonitorID string    `bson:"monitor_id,omitempty" json:"monitor_id,omitempty"`
	Date      string    `bson:"date" json:"date"`             // "2024-01-10"
	StartTime string    `bson:"start_time" json:"start_time"` // "09:00" or "09:00:00"
	EndTime   string    `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Duration  string    `bson:"duration,omitempty" json:"duration,omitempty"` // "01:00:00"
	Deleted   bool      `bson:"deleted,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
