package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	tok, err := Issue("test-secret", 42, "staff", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseAuth("Bearer "+tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "staff", claims["role"])
}

func TestParseAuth_NoBearerPrefix(t *testing.T) {
	tok, err := Issue("test-secret", 7, "staff", 1)
	require.NoError(t, err)

	// A bare token without the Bearer prefix is accepted too.
	claims, err := ParseAuth(tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, float64(7), claims["sub"])
}

func TestParseAuth_WrongSecret(t *testing.T) {
	tok, err := Issue("test-secret", 42, "staff", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other-secret")
	require.Error(t, err)
}

func TestParseAuth_MissingHeader(t *testing.T) {
	_, err := ParseAuth("", "test-secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer   ", "test-secret")
	require.Error(t, err)
}

func TestParseAuth_Expired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": int64(42),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "test-secret")
	require.Error(t, err)
}
