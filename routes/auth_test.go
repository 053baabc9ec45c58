package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildGatedApp wires the verifier, cookie extractor and email-scope
// middleware in front of a stub handler, mirroring the production route tree
// without touching the database.
func buildGatedApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.Extractors = append(accessTokenVerifier.Extractors, func(ctx iris.Context) string {
		return ctx.GetCookie(utils.AuthCookieName)
	})
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	app.Get("/my-bookings/{email}", accessTokenVerifierMiddleware, utils.EmailParamMiddleware, func(ctx iris.Context) {
		ctx.JSON(iris.Map{"ok": true})
	})
	app.Get("/dashboard-bookings", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, func(ctx iris.Context) {
		ctx.JSON(iris.Map{"ok": true})
	})

	app.Build()
	return app
}

func signTestToken(t *testing.T, email, role string) string {
	t.Helper()
	token, err := utils.CreateAccessToken(email, role)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func getWithCookie(app *iris.Application, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestEmailScopedRouteRequiresCookie(t *testing.T) {
	app := buildGatedApp()

	resp := getWithCookie(app, "/my-bookings/a@x.com", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", resp.Code)
	}
}

func TestEmailScopedRouteRejectsOtherIdentity(t *testing.T) {
	app := buildGatedApp()

	token := signTestToken(t, "b@x.com", "user")
	resp := getWithCookie(app, "/my-bookings/a@x.com", token)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for mismatched identity, got %d", resp.Code)
	}
}

func TestEmailScopedRouteAllowsOwnIdentity(t *testing.T) {
	app := buildGatedApp()

	token := signTestToken(t, "a@x.com", "user")
	resp := getWithCookie(app, "/my-bookings/a@x.com", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching identity, got %d", resp.Code)
	}
}

// Tokens are signed with lowercased emails; a mixed-case path parameter is
// still the same identity and must not lock the user out.
func TestEmailScopedRouteIgnoresEmailCase(t *testing.T) {
	app := buildGatedApp()

	token := signTestToken(t, "alice@x.com", "user")
	resp := getWithCookie(app, "/my-bookings/Alice@X.com", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for same identity in different case, got %d", resp.Code)
	}
}

func TestEmailScopedRouteAllowsAdmin(t *testing.T) {
	app := buildGatedApp()

	token := signTestToken(t, "admin@x.com", "admin")
	resp := getWithCookie(app, "/my-bookings/a@x.com", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.Code)
	}
}

func TestDashboardRequiresAdminRole(t *testing.T) {
	app := buildGatedApp()

	token := signTestToken(t, "a@x.com", "user")
	resp := getWithCookie(app, "/dashboard-bookings", token)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp.Code)
	}

	adminToken := signTestToken(t, "admin@x.com", "admin")
	resp = getWithCookie(app, "/dashboard-bookings", adminToken)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp.Code)
	}
}

func TestInvalidCookieRejected(t *testing.T) {
	app := buildGatedApp()

	resp := getWithCookie(app, "/my-bookings/a@x.com", "not-a-token")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", resp.Code)
	}
}
