package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediq/services/calendar"
)

// CalendarHandler exposes personal calendar endpoints. The routes are
// mounted under both the patient and doctor groups; the owner is whoever
// the auth middleware admitted.
type CalendarHandler struct {
	Svc calendar.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler instance.
func NewCalendarHandler(svc calendar.CalendarService) *CalendarHandler {
	return &CalendarHandler{Svc: svc}
}

func respondCalendarError(c *gin.Context, err error) {
	if se, ok := calendar.AsServiceError(err); ok {
		c.JSON(statusForCode(se.Code), gin.H{"error": se.Message})
		return
	}
	respondInternalError(c, err)
}

// CreateHandler records a new event for the authenticated user.
func (h *CalendarHandler) CreateHandler(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Date  string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rec, err := h.Svc.Create(requesterFrom(c), req.Title, req.Date)
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListHandler lists the authenticated user's events.
func (h *CalendarHandler) ListHandler(c *gin.Context) {
	recs, err := h.Svc.ListByUser(requesterFrom(c))
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": recs})
}

// DeleteHandler removes an event. Owner only.
func (h *CalendarHandler) DeleteHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id"), requesterFrom(c)); err != nil {
		respondCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
