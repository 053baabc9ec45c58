package utils

import (
	"net/http"
	"os"
	"testing"

	jwtv4 "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCookieDevelopment(t *testing.T) {
	cookie := AuthCookie("tok", false)

	assert.Equal(t, AuthCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestAuthCookieProduction(t *testing.T) {
	cookie := AuthCookie("tok", true)

	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

// The cookie token is an ordinary HS256 JWS; decoding it with another
// library pins down the claim names the verifier middleware relies on.
func TestCreateAccessTokenRoundTrip(t *testing.T) {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	token, err := CreateAccessToken("a@x.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := jwtv4.MapClaims{}
	parsed, err := jwtv4.ParseWithClaims(token, claims, func(*jwtv4.Token) (interface{}, error) {
		return []byte("testsecret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "a@x.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotNil(t, claims["exp"], "access tokens must expire")
}
