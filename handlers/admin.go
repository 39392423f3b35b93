package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/services/admin"
)

// AdminHandler exposes the platform administration endpoints.
type AdminHandler struct {
	Svc admin.AdminService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

func respondAdminError(c *gin.Context, err error) {
	if se, ok := admin.AsServiceError(err); ok {
		c.JSON(statusForCode(se.Code), gin.H{"error": se.Message})
		return
	}
	respondInternalError(c, err)
}

// LoginHandler signs in the bootstrap admin or a database-backed admin.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPendingDoctorsHandler lists registrations awaiting a decision.
func (h *AdminHandler) ListPendingDoctorsHandler(c *gin.Context) {
	recs, err := h.Svc.ListPendingDoctors()
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": recs})
}

// ApproveDoctorHandler promotes a pending registration to an active doctor.
func (h *AdminHandler) ApproveDoctorHandler(c *gin.Context) {
	logger := getLogger(c)

	doc, err := h.Svc.ApproveDoctor(c, c.Param("id"))
	if err != nil {
		logger.Error("Doctor approval failed", zap.String("pendingId", c.Param("id")), zap.Error(err))
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "doctor approved", "doctor": doc.PublicView()})
}

// RejectDoctorHandler marks a pending registration rejected.
func (h *AdminHandler) RejectDoctorHandler(c *gin.Context) {
	if err := h.Svc.RejectDoctor(c.Param("id")); err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration rejected"})
}

// ApplyFeeDiscountHandler reduces a doctor's fee by a percentage.
func (h *AdminHandler) ApplyFeeDiscountHandler(c *gin.Context) {
	var req struct {
		Percent float64 `json:"percent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc, err := h.Svc.ApplyFeeDiscount(c.Param("id"), req.Percent)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fee discount applied", "doctor": doc.PublicView()})
}

// ListDoctorsHandler returns every doctor account.
func (h *AdminHandler) ListDoctorsHandler(c *gin.Context) {
	recs, err := h.Svc.ListDoctors()
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": recs})
}

// ListPatientsHandler returns every patient account.
func (h *AdminHandler) ListPatientsHandler(c *gin.Context) {
	recs, err := h.Svc.ListPatients()
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": recs})
}

// ListAppointmentsHandler returns every appointment on the platform.
func (h *AdminHandler) ListAppointmentsHandler(c *gin.Context) {
	recs, err := h.Svc.ListAppointments()
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": recs})
}
