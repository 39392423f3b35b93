package calendarRepo

import "mediq/models"

// CalendarRepository defines data access for user-owned calendar events.
type CalendarRepository interface {
	Create(event *models.CalendarEvent) error
	GetByID(id string) (*models.CalendarEvent, error)
	ListByUser(userID string) ([]models.CalendarEvent, error)
	Delete(id string) error
}
