package models

// CollectiveSession is one scheduled date of a collective course subgroup.
// A subgroup with N dates yields N sessions sharing SubgroupID.
type CollectiveSession struct {
	ID            string   `bson:"id" json:"id"`
	SchoolID      string   `bson:"school_id" json:"school_id"`
	CourseID      string   `bson:"course_id" json:"course_id"`             // Root course
	CourseGroupID string   `bson:"course_group_id" json:"course_group_id"` // Degree group inside the course
	SubgroupID    string   `bson:"subgroup_id" json:"subgroup_id"`
	MonitorID     string   `bson:"monitor_id,omitempty" json:"monitor_id,omitempty"` // Inherited from the subgroup
	Date          string   `bson:"date" json:"date"`
	StartTime     string   `bson:"start_time" json:"start_time"`
	EndTime       string   `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Duration      string   `bson:"duration,omitempty" json:"duration,omitempty"`
	ClientIDs     []string `bson:"client_ids,omitempty" json:"client_ids,omitempty"`
}
