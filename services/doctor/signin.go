package doctor

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mediq/utils"
)

// Authenticate verifies a doctor's credentials, issues a fresh token and
// persists its hash so the auth middleware can validate subsequent requests.
func (s *DefaultDoctorService) Authenticate(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	rec, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("Authenticate: failed to fetch doctor", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, newError(CodeAuth, "invalid email or password")
	}
	if !rec.Active {
		return nil, newError(CodeForbidden, "account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, newError(CodeAuth, "invalid email or password")
	}

	token, err := utils.GenerateToken(rec.ID, utils.RoleDoctor, utils.TokenTTL)
	if err != nil {
		logger.Error("Authenticate: token generation failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(rec.ID, bson.M{"tokenHash": tokenHash}); err != nil {
		logger.Error("Authenticate: failed to persist token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	utils.RefreshAuthCache(rec.ID, tokenHash, utils.AuthCacheTTL)

	rec.TokenHash = tokenHash
	return &AuthResponse{Token: token, Doctor: *rec}, nil
}

// RevokeToken clears the doctor's persisted token hash and cache entry,
// invalidating every outstanding token.
func (s *DefaultDoctorService) RevokeToken(id string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"tokenHash": ""}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	utils.ClearAuthCache(id)
	return nil
}
