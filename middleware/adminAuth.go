package middleware

import (
	"net/http"

	"mediq/models"
	"mediq/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuth admits database-backed admins and the config-seeded bootstrap
// admin. The bootstrap identity has no document, so its token hash lives only
// in the auth cache, written at login time.
func AdminAuth(adminLookup TokenHashLookup) gin.HandlerFunc {
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
		if role != utils.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		if subject == models.BootstrapAdminID {
			if !bootstrapHashValid(c, subject, computedHash) {
				return
			}
		} else if !tokenHashValid(c, subject, computedHash, adminLookup) {
			return
		}

		c.Set(CtxAdminID, subject)
		c.Set(CtxRole, utils.RoleAdmin)
		c.Next()
	}
}

func bootstrapHashValid(c *gin.Context, subject, computedHash string) bool {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
		return false
	}
	cachedHash, err := authCache.Get(c.Request.Context(), utils.AuthCachePrefix+subject).Result()
	if err != nil || cachedHash != computedHash {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
		return false
	}
	return true
}
