package models

import "time"

// Doctor is an active, admin-approved practitioner profile.
type Doctor struct {
	ID              string    `bson:"id" json:"id"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"passwordHash" json:"-"`
	TokenHash       string    `bson:"tokenHash,omitempty" json:"-"`
	Name            string    `bson:"name" json:"name"`
	Speciality      string    `bson:"speciality" json:"speciality"`
	ExperienceYears int       `bson:"experienceYears" json:"experienceYears"`
	About           string    `bson:"about,omitempty" json:"about,omitempty"`
	Fee             float64   `bson:"fee" json:"fee"`
	Address         Address   `bson:"address" json:"address"`
	ImageID         string    `bson:"imageId,omitempty" json:"imageId,omitempty"`
	ImageURL        string    `bson:"-" json:"imageUrl,omitempty"` // resolved from ImageID, never stored
	DegreeDocID     string    `bson:"degreeDocId,omitempty" json:"degreeDocId,omitempty"`
	Reviews         []Review  `bson:"reviews,omitempty" json:"reviews,omitempty"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Pending doctor registration statuses.
const (
	PendingStatusPending  = "pending"
	PendingStatusApproved = "approved"
	PendingStatusRejected = "rejected"
)

// PendingDoctor is a self-registration awaiting an admin decision.
type PendingDoctor struct {
	ID              string    `bson:"id" json:"id"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"passwordHash" json:"-"`
	Name            string    `bson:"name" json:"name"`
	Speciality      string    `bson:"speciality" json:"speciality"`
	ExperienceYears int       `bson:"experienceYears" json:"experienceYears"`
	About           string    `bson:"about,omitempty" json:"about,omitempty"`
	Fee             float64   `bson:"fee" json:"fee"`
	Address         Address   `bson:"address" json:"address"`
	ImageID         string    `bson:"imageId,omitempty" json:"imageId,omitempty"`
	DegreeDocID     string    `bson:"degreeDocId,omitempty" json:"degreeDocId,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicView strips credential material for unauthenticated doctor listings.
func (d Doctor) PublicView() Doctor {
	d.PasswordHash = ""
	d.TokenHash = ""
	d.DegreeDocID = ""
	return d
}
