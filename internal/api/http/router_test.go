package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/znapfile/edge-gateway/internal/api/http/handlers"
	"github.com/znapfile/edge-gateway/internal/auth"
	"github.com/znapfile/edge-gateway/internal/config"
	"github.com/znapfile/edge-gateway/internal/domain"
	"github.com/znapfile/edge-gateway/internal/events"
	"github.com/znapfile/edge-gateway/internal/observability"
	"github.com/znapfile/edge-gateway/internal/service"
	"github.com/znapfile/edge-gateway/internal/store"
)

const (
	testEmail    = "admin@znapfile.com"
	testPassword = "SecurePass123!"
	testUserID   = "admin-001"
)

// stubCollaborator records the last delegated request and answers with a
// sentinel response.
type stubCollaborator struct {
	method string
	path   string
}

func (s *stubCollaborator) Serve(c *fiber.Ctx) error {
	s.method = c.Method()
	s.path = c.Path()
	return c.Status(fiber.StatusTeapot).SendString("sentinel-asset")
}

func newTestApp(t *testing.T) (*fiber.App, *stubCollaborator) {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authCfg := config.AuthConfig{
		JWTSecret:              "test-secret",
		AccessTokenTTLMinutes:  60,
		RefreshTokenTTLMinutes: 120,
		BcryptCost:             4,
	}
	hash, err := auth.HashPassword(testPassword, authCfg.BcryptCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	accounts := store.NewMemoryStore(&domain.Account{
		ID:           testUserID,
		Email:        testEmail,
		Username:     "admin",
		Plan:         "max",
		PasswordHash: hash,
	})

	authService := service.NewAuthService(authCfg, accounts, dispatcher)
	uploadService := service.NewUploadService(config.UploadConfig{
		PublicBaseURL: "https://znapfile.com",
		LinkTTLHours:  24,
	}, dispatcher)

	stub := &stubCollaborator{}

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("znapfile-edge-gateway", "test"),
		Auth:           handlers.NewAuthHandler(authService),
		Upload:         handlers.NewUploadHandler(uploadService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), accounts),
		Assets:         stub,
	})
	return app, stub
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *nethttp.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	return data
}

func decodeJSON(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
}

func loginDemo(t *testing.T, app *fiber.App) (access, refresh string) {
	t.Helper()
	resp := doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/login",
		`{"email":"`+testEmail+`","password":"`+testPassword+`"}`)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeJSON(t, readBody(t, resp), &body)
	return body.AccessToken, body.RefreshToken
}

func TestPreflightOptionsAnyAPIPath(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/v1/auth/login", "/api/v1/health", "/api/v1/whatever"} {
		resp := doRequest(t, app, nethttp.MethodOptions, path, "")
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("OPTIONS %s status = %d, want 200", path, resp.StatusCode)
		}
		for _, header := range []string{
			"Access-Control-Allow-Origin",
			"Access-Control-Allow-Methods",
			"Access-Control-Allow-Headers",
		} {
			if got := resp.Header.Get(header); got != "*" {
				t.Fatalf("OPTIONS %s header %s = %q, want *", path, header, got)
			}
		}
		if body := readBody(t, resp); len(body) != 0 {
			t.Fatalf("OPTIONS %s body = %q, want empty", path, body)
		}
	}
}

func TestHealthAnyMethod(t *testing.T) {
	app, _ := newTestApp(t)
	start := time.Now().UTC().Truncate(time.Second)

	for _, method := range []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodPut} {
		resp := doRequest(t, app, method, "/api/v1/health", "")
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("%s /health status = %d", method, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Fatalf("content type = %q", ct)
		}
		var body struct {
			Status    string `json:"status"`
			Service   string `json:"service"`
			Timestamp string `json:"timestamp"`
		}
		decodeJSON(t, readBody(t, resp), &body)
		if body.Status != "ok" || body.Service != "znapfile-edge-gateway" {
			t.Fatalf("unexpected health body: %+v", body)
		}
		ts, err := time.Parse(time.RFC3339, body.Timestamp)
		if err != nil {
			t.Fatalf("timestamp %q does not parse: %v", body.Timestamp, err)
		}
		if ts.Before(start) {
			t.Fatalf("timestamp %v is older than test start %v", ts, start)
		}
	}
}

func TestLoginSuccess(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/login",
		`{"email":"`+testEmail+`","password":"`+testPassword+`"}`)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		User struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
			Plan     string `json:"plan"`
		} `json:"user"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeJSON(t, readBody(t, resp), &body)
	if body.User.ID != testUserID {
		t.Fatalf("user.id = %q, want %q", body.User.ID, testUserID)
	}
	if body.User.Plan != "max" || body.User.Username != "admin" {
		t.Fatalf("unexpected user payload: %+v", body.User)
	}
	if body.AccessToken == "" || body.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", body)
	}
	if body.AccessToken == body.RefreshToken {
		t.Fatalf("access and refresh tokens should differ")
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/login",
		`{"email":"Admin@Znapfile.com","password":"`+testPassword+`"}`)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	for _, payload := range []string{
		`{"email":"` + testEmail + `","password":"wrong"}`,
		`{"email":"nobody@znapfile.com","password":"` + testPassword + `"}`,
		`{"email":"","password":""}`,
	} {
		resp := doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/login", payload)
		if resp.StatusCode != nethttp.StatusUnauthorized {
			t.Fatalf("status = %d, want 401 for %s", resp.StatusCode, payload)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("error response missing CORS header, got %q", got)
		}
		var body struct {
			Detail string `json:"detail"`
		}
		decodeJSON(t, readBody(t, resp), &body)
		if body.Detail != "Invalid credentials" {
			t.Fatalf("detail = %q, want Invalid credentials", body.Detail)
		}
	}
}

func TestLoginMalformedBody(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/login", "this is not json")
	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, readBody(t, resp), &body)
	if body.Detail == "" {
		t.Fatalf("expected parse error detail in body")
	}
}

func TestUploadAnonymousDistinctIDs(t *testing.T) {
	app, _ := newTestApp(t)

	mint := func() (id string, raw map[string]interface{}) {
		resp := doRequest(t, app, nethttp.MethodPost, "/api/v1/upload/anonymous", "")
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		decodeJSON(t, readBody(t, resp), &raw)
		id, _ = raw["id"].(string)
		return id, raw
	}

	first, raw := mint()
	second, _ := mint()

	for _, id := range []string{first, second} {
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("id %q is not a well-formed UUID: %v", id, err)
		}
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}

	page, _ := raw["download_page_url"].(string)
	direct, _ := raw["direct_download_url"].(string)
	if !strings.Contains(page, first) || !strings.Contains(direct, first) {
		t.Fatalf("urls do not reference id %q: %q %q", first, page, direct)
	}
	uploadDate, err := time.Parse(time.RFC3339, raw["upload_date"].(string))
	if err != nil {
		t.Fatalf("upload_date: %v", err)
	}
	expiryDate, err := time.Parse(time.RFC3339, raw["expiry_date"].(string))
	if err != nil {
		t.Fatalf("expiry_date: %v", err)
	}
	if !expiryDate.After(uploadDate) {
		t.Fatalf("expiry %v not after upload %v", expiryDate, uploadDate)
	}
}

func TestUnknownAPIRouteIs404(t *testing.T) {
	app, stub := newTestApp(t)

	for _, probe := range []struct{ method, path string }{
		{nethttp.MethodGet, "/api/v1/unknown"},
		{nethttp.MethodGet, "/api/v1/auth/login"},
		{nethttp.MethodDelete, "/api/v1/upload/anonymous"},
	} {
		resp := doRequest(t, app, probe.method, probe.path, "")
		if resp.StatusCode != nethttp.StatusNotFound {
			t.Fatalf("%s %s status = %d, want 404", probe.method, probe.path, resp.StatusCode)
		}
		if got := string(readBody(t, resp)); got != `{"detail":"Not found"}` {
			t.Fatalf("body = %s", got)
		}
	}
	if stub.path != "" {
		t.Fatalf("API paths must not reach the asset collaborator, saw %q", stub.path)
	}
}

func TestNonAPIPathDelegatesToCollaborator(t *testing.T) {
	app, stub := newTestApp(t)

	resp := doRequest(t, app, nethttp.MethodGet, "/some/other/path", "")
	if resp.StatusCode != nethttp.StatusTeapot {
		t.Fatalf("status = %d, want sentinel 418", resp.StatusCode)
	}
	if got := string(readBody(t, resp)); got != "sentinel-asset" {
		t.Fatalf("body = %q, want sentinel", got)
	}
	if stub.method != nethttp.MethodGet || stub.path != "/some/other/path" {
		t.Fatalf("collaborator saw %s %s", stub.method, stub.path)
	}
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	app, _ := newTestApp(t)
	access, refresh := loginDemo(t, app)

	resp := doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"`+refresh+`"}`)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("refresh status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decodeJSON(t, readBody(t, resp), &body)
	if body.User.ID != testUserID || body.AccessToken == "" || body.RefreshToken == "" {
		t.Fatalf("unexpected refresh body: %+v", body)
	}

	// An access token must not pass as a refresh token.
	resp = doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"`+access+`"}`)
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("refresh with access token status = %d, want 401", resp.StatusCode)
	}

	resp = doRequest(t, app, nethttp.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"garbage"}`)
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("refresh with garbage status = %d, want 401", resp.StatusCode)
	}
	var detail struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, readBody(t, resp), &detail)
	if detail.Detail != "Invalid refresh token" {
		t.Fatalf("detail = %q", detail.Detail)
	}
}

func TestAuthMe(t *testing.T) {
	app, _ := newTestApp(t)
	access, _ := loginDemo(t, app)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("auth/me: %v", err)
	}
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeJSON(t, readBody(t, resp), &body)
	if body.User.ID != testUserID || body.User.Email != testEmail {
		t.Fatalf("unexpected user: %+v", body.User)
	}

	resp = doRequest(t, app, nethttp.MethodGet, "/api/v1/auth/me", "")
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", resp.StatusCode)
	}
}
