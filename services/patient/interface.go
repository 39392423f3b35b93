package patient

import (
	"context"

	doctorRepo "mediq/database/repository/doctor"
	patientRepo "mediq/database/repository/patient"
	"mediq/models"
	"mediq/services/storage"
)

// RegistrationInput is a patient sign-up.
type RegistrationInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Gender   string
}

// ProfileUpdate carries the patient-editable profile fields. Nil pointers
// leave the stored value unchanged.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Gender      *string
	Address     *models.Address
	DateOfBirth *string
	ImagePath   *string
}

// AuthResponse couples a signed token with the authenticated patient.
type AuthResponse struct {
	Token   string         `json:"token"`
	Patient models.Patient `json:"patient"`
}

// PatientService manages patient accounts and profiles.
type PatientService interface {
	// Register creates a patient account and signs it in.
	Register(in RegistrationInput) (*AuthResponse, error)
	// Authenticate signs in a patient and issues a token.
	Authenticate(email, password string) (*AuthResponse, error)
	// GetByID returns the patient with a resolved image URL.
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	// UpdateProfile applies a patient's own profile changes.
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Patient, error)
	// UpdateMedicalHistory lets a treating doctor replace a patient's
	// medical history notes.
	UpdateMedicalHistory(patientID, doctorID, history string) error
	// DeleteAccount removes the patient account and its stored image.
	DeleteAccount(ctx context.Context, id string) error
	// RevokeToken clears the patient's persisted token hash.
	RevokeToken(id string) error
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo       patientRepo.PatientRepository
	DoctorRepo doctorRepo.DoctorRepository
	Storage    storage.StorageService
}
