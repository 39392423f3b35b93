package models

import "time"

// Address is a postal address embedded in doctor and patient profiles.
type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2,omitempty" json:"line2,omitempty"`
	City  string `bson:"city,omitempty" json:"city,omitempty"`
}

// Review is a patient rating embedded in a doctor document.
type Review struct {
	PatientID string    `bson:"patientId" json:"patientId"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
