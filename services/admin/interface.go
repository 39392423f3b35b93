package admin

import (
	"context"

	adminRepo "mediq/database/repository/admin"
	bookingRepo "mediq/database/repository/booking"
	doctorRepo "mediq/database/repository/doctor"
	patientRepo "mediq/database/repository/patient"
	pendingRepo "mediq/database/repository/pending"
	"mediq/models"
)

// AuthResponse carries a signed admin token.
type AuthResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// AdminService covers platform administration: admitting doctors, adjusting
// fees and reviewing platform data.
type AdminService interface {
	// Login authenticates either the config-seeded bootstrap admin or a
	// database-backed admin account.
	Login(email, password string) (*AuthResponse, error)
	// ListPendingDoctors returns registrations awaiting a decision.
	ListPendingDoctors() ([]models.PendingDoctor, error)
	// ApproveDoctor promotes a pending registration to an active doctor.
	ApproveDoctor(ctx context.Context, pendingID string) (*models.Doctor, error)
	// RejectDoctor marks a pending registration rejected.
	RejectDoctor(pendingID string) error
	// ApplyFeeDiscount reduces a doctor's consultation fee by a percentage.
	ApplyFeeDiscount(doctorID string, percent float64) (*models.Doctor, error)
	// ListDoctors returns every doctor account.
	ListDoctors() ([]models.Doctor, error)
	// ListPatients returns every patient account.
	ListPatients() ([]models.Patient, error)
	// ListAppointments returns every appointment on the platform.
	ListAppointments() ([]models.Appointment, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Repo        adminRepo.AdminRepository
	PendingRepo pendingRepo.PendingDoctorRepository
	DoctorRepo  doctorRepo.DoctorRepository
	PatientRepo patientRepo.PatientRepository
	BookingRepo bookingRepo.BookingRepository
}
