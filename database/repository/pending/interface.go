package pendingRepo

import "mediq/models"

// PendingDoctorRepository defines data access for doctor registrations
// awaiting an admin decision.
type PendingDoctorRepository interface {
	Create(p *models.PendingDoctor) error
	GetByID(id string) (*models.PendingDoctor, error)
	GetByEmail(email string) (*models.PendingDoctor, error)
	ListByStatus(status string) ([]models.PendingDoctor, error)
	SetStatus(id, status string) error
	Delete(id string) error
}
