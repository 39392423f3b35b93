package slotRepo

import "mediq/models"

// SlotRepository defines data access for per-doctor, per-day slot documents.
// Reserving and releasing entries during booking is not done here: that is
// the transactional booking repository's job, so both sides commit together.
type SlotRepository interface {
	// GetByID retrieves a slot document by its unique ID.
	GetByID(id string) (*models.SlotDoc, error)
	// GetByDoctorDate retrieves the slot document for (doctorID, date).
	GetByDoctorDate(doctorID, date string) (*models.SlotDoc, error)
	// ListByDoctor retrieves all slot documents for a doctor from the given
	// date onward.
	ListByDoctor(doctorID, fromDate string) ([]models.SlotDoc, error)
	// UpsertDay creates or extends the slot document for (doctorID, date)
	// with entries at the given times. Existing entries, booked or not, are
	// never overwritten.
	UpsertDay(doctorID, date string, times []string) (*models.SlotDoc, error)
	// RemoveEntry deletes an unbooked entry from a slot document.
	RemoveEntry(slotDocID, entryID string) error
}
