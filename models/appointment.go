package models

import "time"

// Appointment statuses.
const (
	AppointmentBooked    = "Booked"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

// Appointment is the patient-facing booking record. While Status is Booked it
// corresponds to exactly one slot entry with isBooked=true and the same
// patient id; cancellation releases that entry.
type Appointment struct {
	ID               string    `bson:"id" json:"id"`
	DoctorID         string    `bson:"doctorId" json:"doctorId"`
	PatientID        string    `bson:"patientId" json:"patientId"`
	SlotDocID        string    `bson:"slotDocId" json:"slotDocId"`
	EntryID          string    `bson:"entryId" json:"entryId"`
	Date             string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time             string    `bson:"time" json:"time"` // "HH:MM"
	Status           string    `bson:"status" json:"status"`
	Type             string    `bson:"type,omitempty" json:"type,omitempty"` // e.g. "consultation", "followup"
	MeetingLink      string    `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	Notes            string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Fee              float64   `bson:"fee" json:"fee"`
	PaymentSessionID string    `bson:"paymentSessionId,omitempty" json:"paymentSessionId,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}
