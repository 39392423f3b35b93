package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mediq/models"
	"mediq/utils"
)

const (
	imageFolder  = "mediq/doctor_images"
	degreeFolder = "mediq/doctor_degrees"
)

// Register validates a doctor's self-registration, stores the uploaded
// documents, and files the record as pending for admin review.
func (s *DefaultDoctorService) Register(ctx context.Context, in RegistrationInput) (*models.PendingDoctor, error) {
	logger := utils.GetLogger()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	// Reject duplicates across both the active and pending collections.
	if existing, err := s.Repo.GetByEmail(in.Email); err != nil {
		logger.Error("Register: doctor lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, newError(CodeConflict, "an account with this email already exists")
	}
	if existing, err := s.PendingRepo.GetByEmail(in.Email); err != nil {
		logger.Error("Register: pending lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		if existing.Status == models.PendingStatusPending {
			return nil, newError(CodeConflict, "a registration with this email is already under review")
		}
		// A decided registration does not block a fresh attempt; clear it so
		// the unique email index admits the new one.
		if err := s.PendingRepo.Delete(existing.ID); err != nil {
			logger.Error("Register: failed to clear old registration", zap.Error(err))
			return nil, fmt.Errorf("registration failed, please try again")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: password hashing failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	rec := models.PendingDoctor{
		ID:              uuid.New().String(),
		Email:           in.Email,
		PasswordHash:    string(hashed),
		Name:            in.Name,
		Speciality:      in.Speciality,
		ExperienceYears: in.ExperienceYears,
		About:           in.About,
		Fee:             in.Fee,
		Address:         in.Address,
		Status:          models.PendingStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if in.ImagePath != "" {
		publicID, err := s.Storage.UploadFile(ctx, in.ImagePath, imageFolder)
		if err != nil {
			logger.Error("Register: image upload failed", zap.Error(err))
			return nil, fmt.Errorf("failed to store profile image: %w", err)
		}
		rec.ImageID = publicID
	}
	if in.DegreeDocPath != "" {
		publicID, err := s.Storage.UploadFile(ctx, in.DegreeDocPath, degreeFolder)
		if err != nil {
			logger.Error("Register: degree document upload failed", zap.Error(err))
			return nil, fmt.Errorf("failed to store degree document: %w", err)
		}
		rec.DegreeDocID = publicID
	}

	if err := s.PendingRepo.Create(&rec); err != nil {
		logger.Error("Register: failed to persist pending doctor", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	logger.Info("doctor registration filed for review",
		zap.String("pendingId", rec.ID), zap.String("email", rec.Email))
	return &rec, nil
}

func validateRegistration(in RegistrationInput) error {
	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return newError(CodeValidation, "a valid email is required")
	case len(in.Password) < 8:
		return newError(CodeValidation, "password must be at least 8 characters")
	case in.Name == "":
		return newError(CodeValidation, "name is required")
	case in.Speciality == "":
		return newError(CodeValidation, "speciality is required")
	case in.ExperienceYears < 0:
		return newError(CodeValidation, "experience years cannot be negative")
	case in.Fee <= 0:
		return newError(CodeValidation, "consultation fee must be positive")
	}
	return nil
}
