package calendar

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	calendarRepo "mediq/database/repository/calendar"
	"mediq/models"
)

const dateLayout = "2006-01-02"

// Error codes mapped to HTTP statuses by the handlers.
const (
	CodeValidation = "validation"
	CodeNotFound   = "notFound"
	CodeForbidden  = "forbidden"
)

type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &ServiceError{Code: code, Message: msg}
}

// AsServiceError returns the typed error if err carries one.
func AsServiceError(err error) (*ServiceError, bool) {
	se, ok := err.(*ServiceError)
	return se, ok
}

// CalendarService manages personal calendar events. Events are private to
// their owner.
type CalendarService interface {
	Create(userID, title, date string) (*models.CalendarEvent, error)
	ListByUser(userID string) ([]models.CalendarEvent, error)
	Delete(id, requesterID string) error
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Repo calendarRepo.CalendarRepository
}

// Create records a new event for the owner.
func (s *DefaultCalendarService) Create(userID, title, date string) (*models.CalendarEvent, error) {
	if title == "" {
		return nil, newError(CodeValidation, "title is required")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, newError(CodeValidation, "date must be YYYY-MM-DD")
	}

	rec := models.CalendarEvent{
		ID:        uuid.New().String(),
		Title:     title,
		Date:      date,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.Create(&rec); err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return &rec, nil
}

// ListByUser returns the owner's events.
func (s *DefaultCalendarService) ListByUser(userID string) ([]models.CalendarEvent, error) {
	recs, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return recs, nil
}

// Delete removes an event. Only the owner may delete it.
func (s *DefaultCalendarService) Delete(id, requesterID string) error {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar event: %w", err)
	}
	if rec == nil {
		return newError(CodeNotFound, "calendar event not found")
	}
	if rec.UserID != requesterID {
		return newError(CodeForbidden, "only the owner may delete this event")
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}
