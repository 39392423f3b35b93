package doctor

import (
	"context"

	doctorRepo "mediq/database/repository/doctor"
	pendingRepo "mediq/database/repository/pending"
	"mediq/models"
	"mediq/services/storage"
)

// RegistrationInput is a doctor self-registration. It lands in the pending
// collection until an admin decides. Image and degree document arrive as
// local temp-file paths saved by the handler.
type RegistrationInput struct {
	Email           string
	Password        string
	Name            string
	Speciality      string
	ExperienceYears int
	About           string
	Fee             float64
	Address         models.Address
	ImagePath       string
	DegreeDocPath   string
}

// ProfileUpdate carries the doctor-editable profile fields. Nil pointers
// leave the stored value unchanged.
type ProfileUpdate struct {
	Name            *string
	Speciality      *string
	ExperienceYears *int
	About           *string
	Fee             *float64
	Address         *models.Address
	ImagePath       *string
}

// AuthResponse couples a signed token with the authenticated doctor.
type AuthResponse struct {
	Token  string        `json:"token"`
	Doctor models.Doctor `json:"doctor"`
}

// DoctorService manages doctor registration, authentication and profiles.
type DoctorService interface {
	// Register files a pending registration for admin review.
	Register(ctx context.Context, in RegistrationInput) (*models.PendingDoctor, error)
	// Authenticate signs in an active doctor and issues a token.
	Authenticate(email, password string) (*AuthResponse, error)
	// GetByID returns a doctor with resolved image URL. Public callers get
	// the credential-stripped view.
	GetByID(ctx context.Context, id string, public bool) (*models.Doctor, error)
	// Search lists active doctors, optionally filtered by speciality.
	Search(ctx context.Context, speciality string) ([]models.Doctor, error)
	// UpdateProfile applies a doctor's own profile changes.
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Doctor, error)
	// AddReview records a patient's rating for a doctor.
	AddReview(doctorID, patientID string, rating int) error
	// RevokeToken clears the doctor's persisted token hash.
	RevokeToken(id string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo        doctorRepo.DoctorRepository
	PendingRepo pendingRepo.PendingDoctorRepository
	Storage     storage.StorageService
}
