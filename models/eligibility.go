package models

// LessonSlot is one requested (date, startTime, duration) tuple.
type LessonSlot struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time"`
	Duration  string `json:"duration" binding:"required"` // "01:00:00"
}

// EligibilityQuery describes the lesson a monitor is searched for.
type EligibilityQuery struct {
	SchoolID        string         `json:"school_id"`
	SportID         string         `json:"sport_id"`
	DegreeID        *int           `json:"degree_id,omitempty"`     // exact match
	MinDegreeID     *int           `json:"min_degree_id,omitempty"` // strictly above
	ClientAge       *int           `json:"client_age,omitempty"`
	ClientLanguages []string       `json:"client_languages,omitempty"`
	Slots           []LessonSlot   `json:"slots" binding:"required,min=1"`
	HourMin         string         `json:"hour_min,omitempty"` // flexible window
	HourMax         string         `json:"hour_max,omitempty"`
	Exclude         *CommitmentRef `json:"exclude,omitempty"`
}

// Flexible reports whether the query carries an hour window.
func (q EligibilityQuery) Flexible() bool {
	return q.HourMin != "" && q.HourMax != ""
}
