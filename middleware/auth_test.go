package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediq/utils"
)

type fakeLookup struct {
	hashes map[string]string
}

func (f *fakeLookup) GetTokenHash(id string) (string, error) {
	hash, ok := f.hashes[id]
	if !ok {
		return "", fmt.Errorf("not found")
	}
	return hash, nil
}

func newAuthRouter(wantRole string, lookup TokenHashLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(wantRole, CtxDoctorID, lookup), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(CtxDoctorID)})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(utils.RoleDoctor, &fakeLookup{})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer ").Code)
}

func TestAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(utils.RoleDoctor, &fakeLookup{})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer not-a-token").Code)
}

func TestAuthRoleMismatch(t *testing.T) {
	token, err := utils.GenerateToken("pat-1", utils.RolePatient, time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(utils.RoleDoctor, &fakeLookup{})
	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer "+token).Code)
}

func TestAuthAdmitsValidToken(t *testing.T) {
	token, err := utils.GenerateToken("doc-1", utils.RoleDoctor, time.Hour)
	require.NoError(t, err)
	lookup := &fakeLookup{hashes: map[string]string{"doc-1": utils.HashToken(token)}}

	r := newAuthRouter(utils.RoleDoctor, lookup)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "doc-1")
}

func TestAuthRejectsRevokedToken(t *testing.T) {
	token, err := utils.GenerateToken("doc-1", utils.RoleDoctor, time.Hour)
	require.NoError(t, err)

	// Stored hash differs: the token was revoked or superseded.
	lookup := &fakeLookup{hashes: map[string]string{"doc-1": utils.HashToken("newer-token")}}
	r := newAuthRouter(utils.RoleDoctor, lookup)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer "+token).Code)

	// Unknown principal is rejected too.
	r = newAuthRouter(utils.RoleDoctor, &fakeLookup{})
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Bearer "+token).Code)
}
