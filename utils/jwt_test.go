package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtract(t *testing.T) {
	token, err := GenerateToken("doc-1", RoleDoctor, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", subject)
	assert.Equal(t, RoleDoctor, role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("pat-1", RolePatient, -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("pat-1", RolePatient, time.Hour)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token + "x")
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ExtractClaimsFromToken("not-a-token")
	assert.Error(t, err)
}

func TestHashTokenStable(t *testing.T) {
	token, err := GenerateToken("adm-1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	h1 := HashToken(token)
	h2 := HashToken(token)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashToken(token+"x"))
}
