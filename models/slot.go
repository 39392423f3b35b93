package models

import "time"

// SlotEntry is a single bookable time-of-day unit embedded in a SlotDoc.
// IsBooked and PatientID always change together: both set or both cleared.
type SlotEntry struct {
	ID        string `bson:"id" json:"id"`
	Time      string `bson:"time" json:"time"` // "HH:MM", 24h
	IsBooked  bool   `bson:"isBooked" json:"isBooked"`
	PatientID string `bson:"patientId,omitempty" json:"patientId,omitempty"`
}

// SlotDoc holds all bookable time entries for one doctor on one calendar day.
// Keyed by (doctorId, date) with a unique compound index.
type SlotDoc struct {
	ID        string      `bson:"id" json:"id"`
	DoctorID  string      `bson:"doctorId" json:"doctorId"`
	Date      string      `bson:"date" json:"date"` // "YYYY-MM-DD"
	Entries   []SlotEntry `bson:"entries" json:"entries"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// Entry returns the embedded entry with the given id, or nil.
func (s *SlotDoc) Entry(entryID string) *SlotEntry {
	for i := range s.Entries {
		if s.Entries[i].ID == entryID {
			return &s.Entries[i]
		}
	}
	return nil
}

// EntryAt returns the embedded entry with the given time, or nil.
func (s *SlotDoc) EntryAt(timeOfDay string) *SlotEntry {
	for i := range s.Entries {
		if s.Entries[i].Time == timeOfDay {
			return &s.Entries[i]
		}
	}
	return nil
}
