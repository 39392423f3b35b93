package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/middleware"
	"mediq/services/booking"
)

// BookingHandler exposes the appointment and slot endpoints.
type BookingHandler struct {
	Svc booking.BookingService
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

func respondBookingError(c *gin.Context, err error) {
	if be, ok := booking.AsBookingError(err); ok {
		c.JSON(statusForCode(be.Code), gin.H{"error": be.Message})
		return
	}
	respondInternalError(c, err)
}

// BookAppointmentHandler books one slot entry for the authenticated patient.
// The checkout session must already be paid.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	var req booking.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.PatientID = c.GetString(middleware.CtxPatientID)

	appt, err := h.Svc.BookAppointment(c, req)
	if err != nil {
		logger.Warn("Booking failed", zap.String("doctorId", req.DoctorID), zap.Error(err))
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// CancelAppointmentHandler cancels a Booked appointment for its patient or
// doctor and releases the slot entry.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	appt, err := h.Svc.CancelAppointment(c, c.Param("id"), requesterFrom(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CompleteAppointmentHandler marks a Booked appointment Completed.
func (h *BookingHandler) CompleteAppointmentHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	var req struct {
		Notes string `json:"notes"`
	}
	// Notes are optional; an empty body is fine.
	_ = c.ShouldBindJSON(&req)

	if err := h.Svc.CompleteAppointment(c, c.Param("id"), doctorID, req.Notes); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment completed"})
}

// GetAppointmentHandler returns one appointment for its patient or doctor.
func (h *BookingHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Svc.GetAppointment(c.Param("id"), requesterFrom(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListPatientAppointmentsHandler lists the patient's own appointments.
func (h *BookingHandler) ListPatientAppointmentsHandler(c *gin.Context) {
	appts, err := h.Svc.ListPatientAppointments(c.GetString(middleware.CtxPatientID))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListDoctorAppointmentsHandler lists the doctor's own appointments.
func (h *BookingHandler) ListDoctorAppointmentsHandler(c *gin.Context) {
	appts, err := h.Svc.ListDoctorAppointments(c.GetString(middleware.CtxDoctorID))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// GetAvailableSlotsHandler lists a doctor's unbooked entries for a date.
// Public; patients browse availability before signing in.
func (h *BookingHandler) GetAvailableSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	entries, err := h.Svc.GetAvailableSlots(c.Param("id"), date)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": entries})
}

// SetupSlotsHandler creates or extends the doctor's slot document for a date.
func (h *BookingHandler) SetupSlotsHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	var req struct {
		Date  string   `json:"date" binding:"required"`
		Times []string `json:"times" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc, err := h.Svc.SetupSlots(doctorID, req.Date, req.Times)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// RemoveSlotEntryHandler deletes an unbooked entry from the doctor's own
// slot document.
func (h *BookingHandler) RemoveSlotEntryHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	if err := h.Svc.RemoveSlotEntry(doctorID, c.Param("slotDocId"), c.Param("entryId")); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot entry removed"})
}
