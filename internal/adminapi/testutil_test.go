package adminapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/handcraftlab/atelier/config"
	"github.com/handcraftlab/atelier/internal/app"
	"github.com/handcraftlab/atelier/internal/webserver"
)

var (
	setupOnce sync.Once
	testApp   *app.Application
	testToken string
)

// setupTestServer boots the full stack once per test binary: sqlite database
// in a temp workdir, the echo server, and the admin routes.
func setupTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	setupOnce.Do(func() {
		workdir, err := os.MkdirTemp("", "atelier-test")
		if err != nil {
			panic(err)
		}
		cfg := config.DefaultAppConfig()
		cfg.System.Workdir = workdir
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = "atelier_test"
		cfg.Logger.Mode = "development"
		// Unroutable endpoints: storage and mail calls must fail fast.
		cfg.Storage.Endpoint = "http://127.0.0.1:1"
		cfg.Smtp.Host = "127.0.0.1"
		cfg.Smtp.Port = 1
		cfg.InitDirs()

		testApp = app.NewApplication(cfg)
		testApp.Init(cfg)
		webserver.Init(testApp)
		Init()
	})
	return webserver.Echo()
}

func doRequest(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// adminToken logs in with the seeded super admin and caches the bearer token.
func adminToken(t *testing.T, e *echo.Echo) string {
	t.Helper()
	if testToken != "" {
		return testToken
	}
	rec := doRequest(t, e, http.MethodPost, "/api/admin/login", "",
		`{"username":"admin","password":"atelier"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: status %d body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("login response decode: %v", err)
	}
	if body.Token == "" {
		t.Fatal("login returned empty token")
	}
	testToken = body.Token
	return testToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response decode: %v (body %s)", err, rec.Body.String())
	}
	return m
}
