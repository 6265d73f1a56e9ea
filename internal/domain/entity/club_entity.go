package entity

import "time"

type ContactInfo struct {
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// ClubUpdate is a free-text announcement appended to a club.
type ClubUpdate struct {
	Message string    `json:"message" bson:"message"`
	Date    time.Time `json:"date" bson:"date"`
}

// Club keeps its updates in append order; they are never edited.
type Club struct {
	ID          string       `json:"id" bson:"_id"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	ContactInfo ContactInfo  `json:"contactInfo" bson:"contactInfo"`
	Updates     []ClubUpdate `json:"updates" bson:"updates"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}
