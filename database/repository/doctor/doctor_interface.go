package doctorRepo

import (
	"mediq/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DoctorRepository defines methods for doctor data access.
type DoctorRepository interface {
	// GetByID retrieves a doctor by its unique ID.
	GetByID(id string) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by its email address.
	GetByEmail(email string) (*models.Doctor, error)
	// GetAll retrieves all doctors.
	GetAll() ([]models.Doctor, error)
	// Create inserts a new doctor record.
	Create(doctor *models.Doctor) error
	// Update modifies an existing doctor record.
	Update(doctor *models.Doctor) error
	// UpdateSetDocument applies a partial $set update to a doctor record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a doctor record by its ID.
	Delete(id string) error
	// SearchBySpeciality retrieves active doctors matching a speciality,
	// case-insensitive. An empty speciality matches all active doctors.
	SearchBySpeciality(speciality string) ([]models.Doctor, error)
	// AddReview appends a patient review to a doctor document.
	AddReview(doctorID string, review models.Review) error
	// GetByIDWithProjection retrieves a doctor by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error)
	// GetTokenHash returns the persisted auth token hash for a doctor.
	GetTokenHash(id string) (string, error)
}
