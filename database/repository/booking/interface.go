package bookingRepo

import (
	"context"
	"errors"

	"mediq/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Sentinel errors surfaced by the transactional operations.
var (
	// ErrSlotUnavailable is returned when the targeted slot entry does not
	// exist or is already booked; nothing is written in that case.
	ErrSlotUnavailable = errors.New("slot no longer available")
	// ErrAppointmentNotFound is returned when no appointment matches the id.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotCancellable is returned when the appointment is not in the
	// Booked state.
	ErrNotCancellable = errors.New("appointment is not in a cancellable state")
)

// BookingRepository owns the appointment collection together with the slot
// collection so that reserving a slot entry and creating its appointment
// commit or roll back as one unit.
type BookingRepository interface {
	// BookTransactionally inserts the appointment and marks the referenced
	// slot entry booked for the appointment's patient in a single
	// transaction. The slot update is conditional on the entry being
	// unbooked, so of two concurrent attempts exactly one wins and the other
	// observes ErrSlotUnavailable with no writes.
	BookTransactionally(ctx context.Context, appt *models.Appointment) error
	// CancelTransactionally flips the appointment to Cancelled and releases
	// its slot entry (isBooked false, patientId cleared) in a single
	// transaction.
	CancelTransactionally(ctx context.Context, appointmentID string) (*models.Appointment, error)

	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// ListByPatient retrieves a patient's appointments, newest first.
	ListByPatient(patientID string) ([]models.Appointment, error)
	// ListByDoctor retrieves a doctor's appointments, newest first.
	ListByDoctor(doctorID string) ([]models.Appointment, error)
	// ListAll retrieves every appointment (admin overview).
	ListAll() ([]models.Appointment, error)
	// UpdateSetDocument applies a partial $set update to an appointment.
	UpdateSetDocument(id string, updateDoc bson.M) error
}
