package models

import "time"

// Patient is a registered patient account and profile.
type Patient struct {
	ID             string    `bson:"id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"passwordHash" json:"-"`
	TokenHash      string    `bson:"tokenHash,omitempty" json:"-"`
	Name           string    `bson:"name" json:"name"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender         string    `bson:"gender,omitempty" json:"gender,omitempty"`
	Address        Address   `bson:"address" json:"address"`
	DateOfBirth    string    `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"` // "YYYY-MM-DD"
	ImageID        string    `bson:"imageId,omitempty" json:"imageId,omitempty"`
	ImageURL       string    `bson:"-" json:"imageUrl,omitempty"`
	MedicalHistory string    `bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
