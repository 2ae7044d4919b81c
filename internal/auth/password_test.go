package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSaltIsSixteenBytes(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(salt)
	require.NoError(t, err)
	assert.Len(t, raw, 16)

	other, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestHashPasswordMatchesSaltThenPassword(t *testing.T) {
	saltBytes := []byte("0123456789abcdef")
	salt := base64.StdEncoding.EncodeToString(saltBytes)

	sum := sha256.Sum256(append(append([]byte{}, saltBytes...), []byte("hunter22")...))
	want := hex.EncodeToString(sum[:])

	got, err := HashPassword("hunter22", salt)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, strings.ToLower(got), got)
	assert.Len(t, got, 64)
}

func TestHashPasswordRejectsBadSalt(t *testing.T) {
	_, err := HashPassword("password", "***not base64***")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	digest, err := HashPassword("correct horse", salt)
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse", digest, salt))
	assert.True(t, VerifyPassword("correct horse", strings.ToUpper(digest), salt))
	assert.False(t, VerifyPassword("correct horsE", digest, salt))
	assert.False(t, VerifyPassword("correct horse", digest, "!!"))
}
