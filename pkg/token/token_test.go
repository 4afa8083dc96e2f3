package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	jwt, err := GenerateJWT(42, "manager", "test-secret", 15)
	require.NoError(t, err)
	require.NotEmpty(t, jwt)

	claims, err := ValidateJWT(jwt, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	jwt, err := GenerateJWT(42, "manager", "test-secret", 15)
	require.NoError(t, err)

	_, err = ValidateJWT(jwt, "other-secret")
	assert.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	jwt, err := GenerateJWT(42, "manager", "test-secret", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(jwt, "test-secret")
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token", "test-secret")
	assert.Error(t, err)
}
