package notification

import (
	"context"

	"mediq/models"

	"go.uber.org/zap"
)

// NotificationService delivers appointment reminders. Delivery is a
// collaborator concern: failures are logged and never affect booking state.
type NotificationService interface {
	SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error
}

// LogNotificationService is the default delivery channel: it records the
// reminder in the application log. Swap in a push or email implementation
// behind the same interface.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error {
	s.Logger.Info("appointment reminder",
		zap.String("appointmentId", p.AppointmentID),
		zap.String("doctorId", p.DoctorID),
		zap.String("patientId", p.PatientID),
		zap.String("date", p.Date),
		zap.String("time", p.Time),
	)
	return nil
}
