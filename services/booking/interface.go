package booking

import (
	"context"
	"time"

	bookingRepo "mediq/database/repository/booking"
	doctorRepo "mediq/database/repository/doctor"
	patientRepo "mediq/database/repository/patient"
	slotRepo "mediq/database/repository/slot"
	"mediq/models"
	"mediq/services/payment"

	"go.uber.org/zap"
)

// BookingRequest carries everything needed to book one slot entry.
type BookingRequest struct {
	DoctorID          string `json:"doctorId" binding:"required"`
	PatientID         string `json:"-"`
	Date              string `json:"date" binding:"required"` // "YYYY-MM-DD"
	EntryID           string `json:"entryId"`
	Time              string `json:"time"` // "HH:MM"; used when EntryID is empty
	Type              string `json:"type"`
	MeetingLink       string `json:"meetingLink"`
	CheckoutSessionID string `json:"checkoutSessionId" binding:"required"`
}

// BookingService is the slot/appointment consistency flow plus the schedule
// management operations around it.
type BookingService interface {
	// BookAppointment verifies the checkout session is paid, then reserves
	// the slot entry and creates the appointment atomically.
	BookAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	// CancelAppointment cancels a Booked appointment and releases its slot
	// entry atomically. Only the appointment's patient or doctor may cancel.
	CancelAppointment(ctx context.Context, appointmentID, requesterID string) (*models.Appointment, error)
	// CompleteAppointment marks a Booked appointment Completed. Doctor only.
	CompleteAppointment(ctx context.Context, appointmentID, doctorID string, notes string) error
	// GetAppointment fetches one appointment for its patient or doctor.
	GetAppointment(appointmentID, requesterID string) (*models.Appointment, error)
	// ListPatientAppointments returns a patient's appointments, newest first.
	ListPatientAppointments(patientID string) ([]models.Appointment, error)
	// ListDoctorAppointments returns a doctor's appointments, newest first.
	ListDoctorAppointments(doctorID string) ([]models.Appointment, error)

	// GetAvailableSlots returns the unbooked entries for a doctor on a date.
	GetAvailableSlots(doctorID, date string) ([]models.SlotEntry, error)
	// SetupSlots creates or extends a doctor's slot document for a date.
	SetupSlots(doctorID, date string, times []string) (*models.SlotDoc, error)
	// RemoveSlotEntry deletes an unbooked entry from the doctor's own
	// slot document.
	RemoveSlotEntry(doctorID, slotDocID, entryID string) error
}

// ReminderScheduler matches cron.ReminderScheduler; declared here so the
// service does not import the worker package.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	SlotRepo    slotRepo.SlotRepository
	DoctorRepo  doctorRepo.DoctorRepository
	PatientRepo patientRepo.PatientRepository
	Payments    payment.Bridge
	Reminders   ReminderScheduler
	Logger      *zap.Logger
}
