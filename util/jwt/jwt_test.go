package jwt

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 42, "ana@example.com", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	parsed, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "ana@example.com", claims["email"])
}

func TestParse_BareToken(t *testing.T) {
	tok, err := Issue("secret", 1, "a@b.com", 1)
	require.NoError(t, err)

	_, err = ParseAuth(tok, "secret")
	require.NoError(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", 1, "a@b.com", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other-secret")
	require.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Issue("secret", 1, "a@b.com", -1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "secret")
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)
}
