package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/middleware"
	"mediq/models"
	"mediq/services/patient"
)

// PatientHandler exposes patient account and profile endpoints.
type PatientHandler struct {
	Svc patient.PatientService
}

// NewPatientHandler creates a new PatientHandler instance.
func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Svc: svc}
}

func respondPatientError(c *gin.Context, err error) {
	if se, ok := patient.AsServiceError(err); ok {
		c.JSON(statusForCode(se.Code), gin.H{"error": se.Message})
		return
	}
	respondInternalError(c, err)
}

// RegisterHandler signs up a new patient account.
func (h *PatientHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Gender   string `json:"gender"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.Register(patient.RegistrationInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Gender:   req.Gender,
	})
	if err != nil {
		logger.Error("Patient registration failed", zap.Error(err))
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler signs in a patient.
func (h *PatientHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.Authenticate(req.Email, req.Password)
	if err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler returns the authenticated patient's profile.
func (h *PatientHandler) GetProfileHandler(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)

	rec, err := h.Svc.GetByID(c, patientID)
	if err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateProfileHandler applies profile changes from a multipart form, with
// an optional replacement image.
func (h *PatientHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString(middleware.CtxPatientID)

	upd := patient.ProfileUpdate{}
	if v, ok := c.GetPostForm("name"); ok {
		upd.Name = &v
	}
	if v, ok := c.GetPostForm("phone"); ok {
		upd.Phone = &v
	}
	if v, ok := c.GetPostForm("gender"); ok {
		upd.Gender = &v
	}
	if v, ok := c.GetPostForm("dateOfBirth"); ok {
		upd.DateOfBirth = &v
	}
	if line1, ok := c.GetPostForm("addressLine1"); ok {
		upd.Address = &models.Address{
			Line1: line1,
			Line2: c.PostForm("addressLine2"),
			City:  c.PostForm("addressCity"),
		}
	}

	imagePath, cleanup, err := saveUploadedTemp(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "detail": err.Error()})
		return
	}
	defer cleanup()
	if imagePath != "" {
		upd.ImagePath = &imagePath
	}

	rec, err := h.Svc.UpdateProfile(c, patientID, upd)
	if err != nil {
		logger.Error("Patient profile update failed", zap.Error(err))
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateMedicalHistoryHandler lets the authenticated doctor replace a
// patient's medical history notes.
func (h *PatientHandler) UpdateMedicalHistoryHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)
	patientID := c.Param("id")

	var req struct {
		MedicalHistory string `json:"medicalHistory" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Svc.UpdateMedicalHistory(patientID, doctorID, req.MedicalHistory); err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "medical history updated"})
}

// DeleteAccountHandler removes the authenticated patient's account.
func (h *PatientHandler) DeleteAccountHandler(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)

	if err := h.Svc.DeleteAccount(c, patientID); err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// RevokeTokenHandler signs the patient out everywhere.
func (h *PatientHandler) RevokeTokenHandler(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)

	if err := h.Svc.RevokeToken(patientID); err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token revoked"})
}
