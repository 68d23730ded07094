package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, "admin", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID, "every token carries a unique id for revocation")
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, "staff", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, "staff", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("test-secret", token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("test-secret", "not.a.token")
	assert.Error(t, err)
}
