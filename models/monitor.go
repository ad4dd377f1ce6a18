package models

// AuthorizedDegree grants a monitor the right to teach a degree of a sport.
type AuthorizedDegree struct {
	SportID  string `bson:"sport_id" json:"sport_id"`
	DegreeID int    `bson:"degree_id" json:"degree_id"`
}

// MonitorCandidate is an instructor searched by the eligibility filter.
// Degree IDs are ordered by skill level within a sport.
type MonitorCandidate struct {
	ID                string             `bson:"id" json:"id"`
	FirstName         string             `bson:"first_name" json:"first_name"`
	LastName          string             `bson:"last_name" json:"last_name"`
	SchoolID          string             `bson:"school_id" json:"school_id"`
	StationID         string             `bson:"station_id,omitempty" json:"station_id,omitempty"`
	Languages         []string           `bson:"languages" json:"languages"` // up to three
	AllowAdults       bool               `bson:"allow_adults" json:"allow_adults"`
	CurrentDegreeID   int                `bson:"current_degree_id,omitempty" json:"current_degree_id,omitempty"`
	AuthorizedDegrees []AuthorizedDegree `bson:"authorized_degrees,omitempty" json:"authorized_degrees,omitempty"`
	Active            bool               `bson:"active" json:"active"`
}
