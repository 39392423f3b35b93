package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediq/middleware"
	"mediq/models"
	"mediq/services/doctor"
)

// DoctorHandler exposes doctor registration, auth and profile endpoints.
type DoctorHandler struct {
	Svc doctor.DoctorService
}

// NewDoctorHandler creates a new DoctorHandler instance.
func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Svc: svc}
}

func respondDoctorError(c *gin.Context, err error) {
	if se, ok := doctor.AsServiceError(err); ok {
		c.JSON(statusForCode(se.Code), gin.H{"error": se.Message})
		return
	}
	respondInternalError(c, err)
}

// RegisterHandler files a doctor self-registration for admin review. The
// request is a multipart form carrying the profile fields plus the profile
// image and degree document files.
func (h *DoctorHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	experienceYears, _ := strconv.Atoi(c.PostForm("experienceYears"))
	fee, err := strconv.ParseFloat(c.PostForm("fee"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fee must be a number"})
		return
	}

	in := doctor.RegistrationInput{
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		Name:            c.PostForm("name"),
		Speciality:      c.PostForm("speciality"),
		ExperienceYears: experienceYears,
		About:           c.PostForm("about"),
		Fee:             fee,
		Address: models.Address{
			Line1: c.PostForm("addressLine1"),
			Line2: c.PostForm("addressLine2"),
			City:  c.PostForm("addressCity"),
		},
	}

	imagePath, imageCleanup, err := saveUploadedTemp(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "detail": err.Error()})
		return
	}
	defer imageCleanup()
	in.ImagePath = imagePath

	degreePath, degreeCleanup, err := saveUploadedTemp(c, "degreeDoc")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read degree document", "detail": err.Error()})
		return
	}
	defer degreeCleanup()
	in.DegreeDocPath = degreePath

	rec, err := h.Svc.Register(c, in)
	if err != nil {
		logger.Error("Doctor registration failed", zap.Error(err))
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "registration submitted for review",
		"pending": rec,
	})
}

// LoginHandler signs in an active doctor.
func (h *DoctorHandler) LoginHandler(c *gin.Context) {
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
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler returns the authenticated doctor's own profile.
func (h *DoctorHandler) GetProfileHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	rec, err := h.Svc.GetByID(c, doctorID, false)
	if err != nil {
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetPublicHandler returns a doctor's public profile by id.
func (h *DoctorHandler) GetPublicHandler(c *gin.Context) {
	rec, err := h.Svc.GetByID(c, c.Param("id"), true)
	if err != nil {
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// SearchHandler lists active doctors, optionally filtered by speciality.
func (h *DoctorHandler) SearchHandler(c *gin.Context) {
	recs, err := h.Svc.Search(c, c.Query("speciality"))
	if err != nil {
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": recs})
}

// UpdateProfileHandler applies the doctor's own profile changes from a
// multipart form.
func (h *DoctorHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.GetString(middleware.CtxDoctorID)

	upd := doctor.ProfileUpdate{}
	if v, ok := c.GetPostForm("name"); ok {
		upd.Name = &v
	}
	if v, ok := c.GetPostForm("speciality"); ok {
		upd.Speciality = &v
	}
	if v, ok := c.GetPostForm("experienceYears"); ok {
		years, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "experienceYears must be a number"})
			return
		}
		upd.ExperienceYears = &years
	}
	if v, ok := c.GetPostForm("about"); ok {
		upd.About = &v
	}
	if v, ok := c.GetPostForm("fee"); ok {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fee must be a number"})
			return
		}
		upd.Fee = &fee
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

	rec, err := h.Svc.UpdateProfile(c, doctorID, upd)
	if err != nil {
		logger.Error("Doctor profile update failed", zap.Error(err))
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// AddReviewHandler records the authenticated patient's rating for a doctor.
func (h *DoctorHandler) AddReviewHandler(c *gin.Context) {
	patientID := c.GetString(middleware.CtxPatientID)
	doctorID := c.Param("id")

	var req struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Svc.AddReview(doctorID, patientID, req.Rating); err != nil {
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "review added"})
}

// RevokeTokenHandler signs the doctor out everywhere.
func (h *DoctorHandler) RevokeTokenHandler(c *gin.Context) {
	doctorID := c.GetString(middleware.CtxDoctorID)

	if err := h.Svc.RevokeToken(doctorID); err != nil {
		respondDoctorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token revoked"})
}
