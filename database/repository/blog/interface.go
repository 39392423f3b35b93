package blogRepo

import "mediq/models"

// BlogRepository defines data access for doctor-authored articles.
type BlogRepository interface {
	Create(blog *models.Blog) error
	GetByID(id string) (*models.Blog, error)
	List(category string) ([]models.Blog, error)
	ListByAuthor(authorID string) ([]models.Blog, error)
	Update(blog *models.Blog) error
	Delete(id string) error
}
