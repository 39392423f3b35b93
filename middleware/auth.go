// File: middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"mediq/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TokenHashLookup resolves the persisted token hash for a principal id. Each
// repository (doctor, patient, admin) provides one so the middleware can stay
// agnostic of the backing collection.
type TokenHashLookup interface {
	GetTokenHash(id string) (string, error)
}

// Context keys set by the auth middlewares.
const (
	CtxDoctorID  = "doctorID"
	CtxPatientID = "patientID"
	CtxAdminID   = "adminID"
	CtxRole      = "role"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

// Auth returns a middleware that admits only bearers of a valid token whose
// role claim matches the wanted role and whose token hash matches the one
// persisted for the principal. Hashes are cached in Redis with a DB fallback.
func Auth(wantRole, ctxKey string, lookup TokenHashLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if role != wantRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		if !tokenHashValid(c, subject, computedHash, lookup) {
			return
		}

		c.Set(ctxKey, subject)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// tokenHashValid checks the computed hash against the auth cache, falling
// back to the repository on a miss. It aborts the request on mismatch.
func tokenHashValid(c *gin.Context, subject, computedHash string, lookup TokenHashLookup) bool {
	ctx := context.Background()
	cacheKey := utils.AuthCachePrefix + subject

	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash == computedHash {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				return true
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return false
		} else if err != redis.Nil {
			utils.GetLogger().Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
		}
	}

	storedHash, err := lookup.GetTokenHash(subject)
	if err != nil || storedHash == "" || storedHash != computedHash {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or account not found"})
		return false
	}

	if authCache != nil {
		_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
	}
	return true
}
