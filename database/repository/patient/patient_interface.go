package patientRepo

import (
	"mediq/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	// GetByID retrieves a patient by its unique ID.
	GetByID(id string) (*models.Patient, error)
	// GetByEmail retrieves a patient by its email address.
	GetByEmail(email string) (*models.Patient, error)
	// GetAll retrieves all patients.
	GetAll() ([]models.Patient, error)
	// Create inserts a new patient record.
	Create(patient *models.Patient) error
	// Update modifies an existing patient record.
	Update(patient *models.Patient) error
	// UpdateSetDocument applies a partial $set update to a patient record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a patient record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a patient by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Patient, error)
	// GetTokenHash returns the persisted auth token hash for a patient.
	GetTokenHash(id string) (string, error)
}
