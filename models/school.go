package models

// School scopes a query and supplies the opening hours used for full-day NWD blocks.
type School struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	OpeningTime string `bson:"opening_time" json:"opening_time"` // "09:00:00"
	ClosingTime string `bson:"closing_time" json:"closing_time"` // "17:00:00"
}
