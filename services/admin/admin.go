package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mediq/config"
	"mediq/models"
	"mediq/utils"
)

// Login authenticates either the bootstrap admin from configuration or a
// database-backed admin account. The bootstrap identity has no document, so
// its token hash is written to the auth cache only.
func (s *DefaultAdminService) Login(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()
	email = strings.ToLower(strings.TrimSpace(email))

	cfg := config.AppConfig
	if cfg.AdminEmail != "" &&
		subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(cfg.AdminEmail))) == 1 {
		if subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) != 1 {
			return nil, newError(CodeAuth, "invalid email or password")
		}
		token, err := utils.GenerateToken(models.BootstrapAdminID, utils.RoleAdmin, utils.TokenTTL)
		if err != nil {
			logger.Error("Login: token generation failed", zap.Error(err))
			return nil, fmt.Errorf("authentication failed, please try again")
		}
		utils.RefreshAuthCache(models.BootstrapAdminID, utils.HashToken(token), utils.TokenTTL)
		return &AuthResponse{Token: token, AdminID: models.BootstrapAdminID}, nil
	}

	rec, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("Login: failed to fetch admin", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, newError(CodeAuth, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, newError(CodeAuth, "invalid email or password")
	}

	token, err := utils.GenerateToken(rec.ID, utils.RoleAdmin, utils.TokenTTL)
	if err != nil {
		logger.Error("Login: token generation failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(rec.ID, tokenHash); err != nil {
		logger.Error("Login: failed to persist token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	utils.RefreshAuthCache(rec.ID, tokenHash, utils.AuthCacheTTL)

	return &AuthResponse{Token: token, AdminID: rec.ID}, nil
}

// ListPendingDoctors returns registrations still awaiting a decision.
func (s *DefaultAdminService) ListPendingDoctors() ([]models.PendingDoctor, error) {
	recs, err := s.PendingRepo.ListByStatus(models.PendingStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending doctors: %w", err)
	}
	return recs, nil
}

// ApproveDoctor promotes a pending registration to an active doctor account.
// The pending record keeps its approved status as an audit trail.
func (s *DefaultAdminService) ApproveDoctor(ctx context.Context, pendingID string) (*models.Doctor, error) {
	logger := utils.GetLogger()

	pend, err := s.PendingRepo.GetByID(pendingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending doctor: %w", err)
	}
	if pend == nil {
		return nil, newError(CodeNotFound, "pending registration not found")
	}
	if pend.Status != models.PendingStatusPending {
		return nil, newError(CodeConflict, "registration has already been decided")
	}

	doc := models.Doctor{
		ID:              pend.ID,
		Email:           pend.Email,
		PasswordHash:    pend.PasswordHash,
		Name:            pend.Name,
		Speciality:      pend.Speciality,
		ExperienceYears: pend.ExperienceYears,
		About:           pend.About,
		Fee:             pend.Fee,
		Address:         pend.Address,
		ImageID:         pend.ImageID,
		DegreeDocID:     pend.DegreeDocID,
		Active:          true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := s.DoctorRepo.Create(&doc); err != nil {
		return nil, fmt.Errorf("failed to create doctor account: %w", err)
	}
	if err := s.PendingRepo.SetStatus(pendingID, models.PendingStatusApproved); err != nil {
		logger.Error("ApproveDoctor: failed to mark pending record approved",
			zap.String("pendingId", pendingID), zap.Error(err))
	}

	logger.Info("doctor approved", zap.String("doctorId", doc.ID), zap.String("email", doc.Email))
	return &doc, nil
}

// RejectDoctor marks a pending registration rejected.
func (s *DefaultAdminService) RejectDoctor(pendingID string) error {
	pend, err := s.PendingRepo.GetByID(pendingID)
	if err != nil {
		return fmt.Errorf("failed to fetch pending doctor: %w", err)
	}
	if pend == nil {
		return newError(CodeNotFound, "pending registration not found")
	}
	if pend.Status != models.PendingStatusPending {
		return newError(CodeConflict, "registration has already been decided")
	}
	if err := s.PendingRepo.SetStatus(pendingID, models.PendingStatusRejected); err != nil {
		return fmt.Errorf("failed to reject registration: %w", err)
	}
	return nil
}

// ApplyFeeDiscount reduces a doctor's consultation fee by the given
// percentage, rounded to two decimals.
func (s *DefaultAdminService) ApplyFeeDiscount(doctorID string, percent float64) (*models.Doctor, error) {
	if percent < 0 || percent > 100 {
		return nil, newError(CodeValidation, "discount percentage must be between 0 and 100")
	}
	doc, err := s.DoctorRepo.GetByID(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doc == nil {
		return nil, newError(CodeNotFound, "doctor not found")
	}

	newFee := math.Round(doc.Fee*(100-percent)) / 100
	if err := s.DoctorRepo.UpdateSetDocument(doctorID, bson.M{"fee": newFee}); err != nil {
		return nil, fmt.Errorf("failed to apply fee discount: %w", err)
	}
	doc.Fee = newFee

	utils.GetLogger().Info("fee discount applied",
		zap.String("doctorId", doctorID), zap.Float64("percent", percent), zap.Float64("newFee", newFee))
	return doc, nil
}

// ListDoctors returns every doctor account.
func (s *DefaultAdminService) ListDoctors() ([]models.Doctor, error) {
	recs, err := s.DoctorRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return recs, nil
}

// ListPatients returns every patient account.
func (s *DefaultAdminService) ListPatients() ([]models.Patient, error) {
	recs, err := s.PatientRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return recs, nil
}

// ListAppointments returns every appointment on the platform.
func (s *DefaultAdminService) ListAppointments() ([]models.Appointment, error) {
	recs, err := s.BookingRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return recs, nil
}
