package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokenString, err := GenerateToken("auth0|abc", "Alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	tokenString, err := GenerateToken("auth0|abc", "Alice", "")
	require.NoError(t, err)

	sig, err := ExtractSignature(tokenString)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	_, err = ExtractSignature("malformed")
	assert.Error(t, err)
}

func TestTokenIdentifier(t *testing.T) {
	claims, err := ValidateToken(mustToken(t))
	require.NoError(t, err)
	assert.Equal(t, "Inkstone|auth0|abc", claims.TokenIdentifier())
}

func mustToken(t *testing.T) string {
	t.Helper()
	tokenString, err := GenerateToken("auth0|abc", "Alice", "")
	require.NoError(t, err)
	return tokenString
}
