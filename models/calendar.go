package models

import "time"

// CalendarEvent is a personal reminder owned by a single user. Only the
// owner may read or delete it.
type CalendarEvent struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Date      string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	UserID    string    `bson:"userId" json:"userId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
