package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/MicahParks/keyfunc"
	jwtv4 "github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// AuthCookieName matches what the browser client sends back.
const AuthCookieName = "token"

// AccessToken is the claim set embedded in the auth cookie.
type AccessToken struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func CreateAccessToken(email, role string) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)

	claims := AccessToken{
		Email: email,
		Role:  role,
	}

	token, err := signer.Sign(claims)
	if err != nil {
		return "", err
	}

	return string(token), nil
}

// AuthCookie builds the cookie carrying the access token. Secure and
// SameSite=None only in production so local development over http works.
func AuthCookie(token string, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func SetAuthCookie(ctx iris.Context, token string) {
	ctx.SetCookie(AuthCookie(token, os.Getenv("ENV") == "production"))
}

func ClearAuthCookie(ctx iris.Context) {
	cookie := AuthCookie("", os.Getenv("ENV") == "production")
	cookie.MaxAge = -1
	ctx.SetCookie(cookie)
}

// VerifyExternalIDToken validates an identity-provider token (the client
// signs in with Firebase) against the JWKS at AUTH_JWKS_URL and returns the
// verified email claim. Same flow as verifying a Sign-in-with-Apple token.
func VerifyExternalIDToken(idToken string) (string, error) {
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL == "" {
		return "", errors.New("AUTH_JWKS_URL is not configured")
	}

	res, httpErr := http.Get(jwksURL)
	if httpErr != nil {
		return "", httpErr
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		return "", bodyErr
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	if jwksErr != nil {
		return "", jwksErr
	}

	token, tokenErr := jwtv4.Parse(idToken, jwks.Keyfunc)
	if tokenErr != nil {
		return "", tokenErr
	}
	if !token.Valid {
		return "", errors.New("invalid identity token")
	}

	email := fmt.Sprint(token.Claims.(jwtv4.MapClaims)["email"])
	if email == "" || email == "<nil>" {
		return "", errors.New("identity token has no email claim")
	}
	return email, nil
}
