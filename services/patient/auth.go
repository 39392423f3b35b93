package patient

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mediq/models"
	"mediq/utils"
)

// Register creates a patient account and signs it in immediately.
func (s *DefaultPatientService) Register(in RegistrationInput) (*AuthResponse, error) {
	logger := utils.GetLogger()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return nil, newError(CodeValidation, "a valid email is required")
	case len(in.Password) < 8:
		return nil, newError(CodeValidation, "password must be at least 8 characters")
	case in.Name == "":
		return nil, newError(CodeValidation, "name is required")
	}

	if existing, err := s.Repo.GetByEmail(in.Email); err != nil {
		logger.Error("Register: patient lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	} else if existing != nil {
		return nil, newError(CodeConflict, "an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: password hashing failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	rec := models.Patient{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hashed),
		Name:         in.Name,
		Phone:        in.Phone,
		Gender:       in.Gender,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.Repo.Create(&rec); err != nil {
		logger.Error("Register: failed to persist patient", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(&rec)
}

// Authenticate verifies a patient's credentials and issues a fresh token.
func (s *DefaultPatientService) Authenticate(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	rec, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		logger.Error("Authenticate: failed to fetch patient", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, newError(CodeAuth, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, newError(CodeAuth, "invalid email or password")
	}

	return s.issueToken(rec)
}

// issueToken generates a token, persists its hash and warms the auth cache.
func (s *DefaultPatientService) issueToken(rec *models.Patient) (*AuthResponse, error) {
	token, err := utils.GenerateToken(rec.ID, utils.RolePatient, utils.TokenTTL)
	if err != nil {
		utils.GetLogger().Error("issueToken: token generation failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(rec.ID, bson.M{"tokenHash": tokenHash}); err != nil {
		utils.GetLogger().Error("issueToken: failed to persist token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	utils.RefreshAuthCache(rec.ID, tokenHash, utils.AuthCacheTTL)

	rec.TokenHash = tokenHash
	return &AuthResponse{Token: token, Patient: *rec}, nil
}

// RevokeToken clears the patient's persisted token hash and cache entry.
func (s *DefaultPatientService) RevokeToken(id string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"tokenHash": ""}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	utils.ClearAuthCache(id)
	return nil
}
