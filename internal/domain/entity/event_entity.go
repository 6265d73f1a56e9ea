package entity

import "time"

// Event is a campus event users can register for.
// Date is a calendar date without time zone; Time is a local display string.
type Event struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Date        string    `json:"date" bson:"date"`
	Time        string    `json:"time,omitempty" bson:"time,omitempty"`
	Location    string    `json:"location" bson:"location"`
	Description string    `json:"description" bson:"description"`
	PosterURL   string    `json:"posterUrl,omitempty" bson:"posterUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
