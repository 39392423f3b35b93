package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediq/models"
)

type fakeCalendarRepo struct {
	events map[string]*models.CalendarEvent
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{events: make(map[string]*models.CalendarEvent)}
}

func (r *fakeCalendarRepo) Create(event *models.CalendarEvent) error {
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeCalendarRepo) GetByID(id string) (*models.CalendarEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeCalendarRepo) ListByUser(userID string) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeCalendarRepo) Delete(id string) error {
	if _, ok := r.events[id]; !ok {
		return fmt.Errorf("event not found")
	}
	delete(r.events, id)
	return nil
}

func TestCreateAndList(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := &DefaultCalendarService{Repo: repo}
	date := time.Now().AddDate(0, 0, 3).Format(dateLayout)

	rec, err := svc.Create("pat-1", "Follow-up visit", date)
	require.NoError(t, err)
	assert.Equal(t, "pat-1", rec.UserID)

	_, err = svc.Create("pat-2", "Other visit", date)
	require.NoError(t, err)

	events, err := svc.ListByUser("pat-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Follow-up visit", events[0].Title)
}

func TestCreateValidation(t *testing.T) {
	svc := &DefaultCalendarService{Repo: newFakeCalendarRepo()}

	_, err := svc.Create("pat-1", "", "2026-10-01")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code)

	_, err = svc.Create("pat-1", "Visit", "October 1st")
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code)
}

func TestDeleteOwnerOnly(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := &DefaultCalendarService{Repo: repo}

	rec, err := svc.Create("pat-1", "Visit", "2026-10-01")
	require.NoError(t, err)

	err = svc.Delete(rec.ID, "pat-2")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, se.Code)
	assert.Len(t, repo.events, 1)

	require.NoError(t, svc.Delete(rec.ID, "pat-1"))
	assert.Empty(t, repo.events)

	err = svc.Delete(rec.ID, "pat-1")
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code)
}
