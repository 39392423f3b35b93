package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/config"
	doctorRepo "mediq/database/repository/doctor"
	"mediq/middleware"
	"mediq/services/payment"
)

// PaymentHandler opens hosted checkout sessions for appointment fees. The
// booking endpoint later verifies the session before touching any slot.
type PaymentHandler struct {
	Bridge     payment.Bridge
	DoctorRepo doctorRepo.DoctorRepository
}

// NewPaymentHandler creates a new PaymentHandler instance.
func NewPaymentHandler(bridge payment.Bridge, doctors doctorRepo.DoctorRepository) *PaymentHandler {
	return &PaymentHandler{Bridge: bridge, DoctorRepo: doctors}
}

// CreateCheckoutHandler opens a checkout session for a doctor's consultation
// fee and returns the redirect URL.
func (h *PaymentHandler) CreateCheckoutHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString(middleware.CtxPatientID)

	var req struct {
		DoctorID string `json:"doctorId" binding:"required"`
		Date     string `json:"date"`
		Time     string `json:"time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc, err := h.DoctorRepo.GetByID(req.DoctorID)
	if err != nil {
		logger.Error("Checkout: failed to fetch doctor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open checkout session"})
		return
	}
	if doc == nil || !doc.Active {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		return
	}

	// Fee is stored in major units; the checkout provider wants the
	// smallest currency unit.
	amount := int64(math.Round(doc.Fee * 100))
	description := fmt.Sprintf("Consultation with Dr. %s", doc.Name)
	metadata := map[string]string{
		"doctorId":  doc.ID,
		"patientId": patientID,
	}
	if req.Date != "" {
		metadata["date"] = req.Date
	}
	if req.Time != "" {
		metadata["time"] = req.Time
	}

	session, err := h.Bridge.CreateSession(c, amount, config.AppConfig.PaymentCurrency, description, metadata)
	if err != nil {
		logger.Error("Checkout: session creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open checkout session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetCheckoutStatusHandler resolves a session id to its paid status so the
// frontend can poll after the redirect.
func (h *PaymentHandler) GetCheckoutStatusHandler(c *gin.Context) {
	status, err := h.Bridge.RetrieveSession(c, c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
		return
	}
	c.JSON(http.StatusOK, status)
}
