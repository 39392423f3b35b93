package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "mediq/database/repository/booking"
	"mediq/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// reminderLead is how long before the appointment the reminder fires.
const reminderLead = time.Hour

// BookAppointment verifies payment, then reserves the slot entry and creates
// the appointment as one atomic unit. The payment check runs before any slot
// read or write; an unpaid or unknown session never touches the slot
// collection.
func (s *DefaultBookingService) BookAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	status, err := s.Payments.RetrieveSession(ctx, req.CheckoutSessionID)
	if err != nil {
		return nil, newError(CodePaymentRequired, "payment session could not be verified")
	}
	if !status.Paid {
		return nil, newError(CodePaymentRequired, "payment session is not paid")
	}

	doctor, err := s.DoctorRepo.GetByID(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doctor == nil || !doctor.Active {
		return nil, newError(CodeNotFound, "doctor not found")
	}

	slotDoc, err := s.SlotRepo.GetByDoctorDate(req.DoctorID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	if slotDoc == nil {
		return nil, newError(CodeSlotUnavailable, "no slots published for this date")
	}

	entry := slotDoc.Entry(req.EntryID)
	if entry == nil && req.Time != "" {
		entry = slotDoc.EntryAt(req.Time)
	}
	if entry == nil {
		return nil, newError(CodeSlotUnavailable, "slot no longer available")
	}
	if entry.IsBooked {
		return nil, newError(CodeSlotUnavailable, "slot no longer available")
	}

	appt := &models.Appointment{
		ID:               uuid.New().String(),
		DoctorID:         req.DoctorID,
		PatientID:        req.PatientID,
		SlotDocID:        slotDoc.ID,
		EntryID:          entry.ID,
		Date:             req.Date,
		Time:             entry.Time,
		Type:             req.Type,
		MeetingLink:      req.MeetingLink,
		Fee:              doctor.Fee,
		PaymentSessionID: req.CheckoutSessionID,
	}

	// The conditional update inside the transaction is the authoritative
	// availability check; the read above only short-circuits the common case.
	if err := s.Repo.BookTransactionally(ctx, appt); err != nil {
		if err == bookingRepo.ErrSlotUnavailable {
			return nil, newError(CodeSlotUnavailable, "slot no longer available")
		}
		return nil, fmt.Errorf("booking failed: %w", err)
	}

	s.scheduleReminder(appt)
	return appt, nil
}

// scheduleReminder enqueues a best-effort reminder; failures are logged only.
func (s *DefaultBookingService) scheduleReminder(appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	at, err := time.ParseInLocation(dateLayout+" "+timeLayout, appt.Date+" "+appt.Time, time.Local)
	if err != nil {
		return
	}
	fireAt := at.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		Date:          appt.Date,
		Time:          appt.Time,
	}
	if err := s.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		s.Logger.Warn("failed to schedule appointment reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// CancelAppointment cancels a Booked appointment and releases its slot entry
// atomically. The requester must be the appointment's patient or doctor.
func (s *DefaultBookingService) CancelAppointment(ctx context.Context, appointmentID, requesterID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		if err == bookingRepo.ErrAppointmentNotFound {
			return nil, newError(CodeNotFound, "appointment not found")
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt.PatientID != requesterID && appt.DoctorID != requesterID {
		return nil, newError(CodeForbidden, "not your appointment")
	}

	cancelled, err := s.Repo.CancelTransactionally(ctx, appointmentID)
	if err != nil {
		switch err {
		case bookingRepo.ErrAppointmentNotFound:
			return nil, newError(CodeNotFound, "appointment not found")
		case bookingRepo.ErrNotCancellable:
			return nil, newError(CodeValidation, "appointment is not cancellable")
		default:
			return nil, fmt.Errorf("cancellation failed: %w", err)
		}
	}
	return cancelled, nil
}

// CompleteAppointment marks a Booked appointment Completed. The slot entry
// stays booked: the visit happened.
func (s *DefaultBookingService) CompleteAppointment(ctx context.Context, appointmentID, doctorID string, notes string) error {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		if err == bookingRepo.ErrAppointmentNotFound {
			return newError(CodeNotFound, "appointment not found")
		}
		return fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt.DoctorID != doctorID {
		return newError(CodeForbidden, "not your appointment")
	}
	if appt.Status != models.AppointmentBooked {
		return newError(CodeValidation, "only booked appointments can be completed")
	}

	update := bson.M{"status": models.AppointmentCompleted}
	if notes != "" {
		update["notes"] = notes
	}
	return s.Repo.UpdateSetDocument(appointmentID, update)
}

// GetAppointment fetches one appointment for its patient or doctor.
func (s *DefaultBookingService) GetAppointment(appointmentID, requesterID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		if err == bookingRepo.ErrAppointmentNotFound {
			return nil, newError(CodeNotFound, "appointment not found")
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt.PatientID != requesterID && appt.DoctorID != requesterID {
		return nil, newError(CodeForbidden, "not your appointment")
	}
	return appt, nil
}

// ListPatientAppointments returns a patient's appointments, newest first.
func (s *DefaultBookingService) ListPatientAppointments(patientID string) ([]models.Appointment, error) {
	return s.Repo.ListByPatient(patientID)
}

// ListDoctorAppointments returns a doctor's appointments, newest first.
func (s *DefaultBookingService) ListDoctorAppointments(doctorID string) ([]models.Appointment, error) {
	return s.Repo.ListByDoctor(doctorID)
}

func validateBookingRequest(req BookingRequest) error {
	if req.DoctorID == "" || req.PatientID == "" {
		return newError(CodeValidation, "doctorId and patientId are required")
	}
	if req.CheckoutSessionID == "" {
		return newError(CodePaymentRequired, "checkout session reference is required")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return newError(CodeValidation, "date must be YYYY-MM-DD")
	}
	if req.EntryID == "" && req.Time == "" {
		return newError(CodeValidation, "entryId or time is required")
	}
	if req.Time != "" {
		if _, err := time.Parse(timeLayout, req.Time); err != nil {
			return newError(CodeValidation, "time must be HH:MM")
		}
	}
	return nil
}
