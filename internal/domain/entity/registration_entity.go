package entity

import "time"

// Registration links one user to one event.
// At most one exists per (UserID, EventID); it is created and deleted, never updated.
type Registration struct {
	UserID       string    `json:"userId" bson:"userId"`
	EventID      string    `json:"eventId" bson:"eventId"`
	RegisteredAt time.Time `json:"registeredAt" bson:"registeredAt"`
}

// Key returns the composite identity of the registration.
func (r Registration) Key() string {
	return RegistrationKey(r.UserID, r.EventID)
}

// RegistrationKey builds the composite identity used as the document key.
func RegistrationKey(userID, eventID string) string {
	return userID + ":" + eventID
}
