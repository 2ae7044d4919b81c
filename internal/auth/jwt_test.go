package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitJWT("test-secret")

	sessionID := uuid.New()
	token, err := GenerateToken(sessionID, 42, "creator", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "creator", claims.Role)

	got, err := claims.SessionID()
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken(uuid.New(), 1, "admin", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	InitJWT("first")
	token, err := GenerateToken(uuid.New(), 1, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	InitJWT("second")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
