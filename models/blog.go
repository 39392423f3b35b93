package models

import "time"

// Blog is an article authored by a doctor. Only the author may update or
// delete it.
type Blog struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Category  string    `bson:"category,omitempty" json:"category,omitempty"`
	ImageID   string    `bson:"imageId,omitempty" json:"imageId,omitempty"`
	ImageURL  string    `bson:"-" json:"imageUrl,omitempty"`
	AuthorID  string    `bson:"authorId" json:"authorId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
