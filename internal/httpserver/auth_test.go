package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arslanca/portfolio/internal/config"
	"github.com/arslanca/portfolio/internal/hash"
	"github.com/arslanca/portfolio/internal/middleware"
	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/ratelimit"
	"github.com/arslanca/portfolio/internal/repo"
	"github.com/arslanca/portfolio/internal/service"
	"github.com/arslanca/portfolio/internal/stats"
	"github.com/arslanca/portfolio/internal/tokens"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	rp := repo.New(db)
	passwordHash, err := hash.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, rp.DB.Create(&models.User{
		Username:     "admin",
		PasswordHash: passwordHash,
		Role:         "admin",
	}).Error)

	codec := &tokens.Codec{
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	limiter := ratelimit.New()

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	Register(e, &Deps{
		Gate:             &middleware.Gate{Repo: rp, Codec: codec},
		AuthHandler:      &AuthHandler{Svc: &service.AuthService{Repo: rp, Codec: codec, Limiter: limiter}},
		BlogHandler:      &BlogHandler{Svc: &service.BlogService{Repo: rp}},
		ProjectHandler:   &ProjectHandler{Svc: &service.ProjectService{Repo: rp}},
		TechStackHandler: &TechStackHandler{Svc: &service.TechStackService{Repo: rp}},
		ContactHandler:   &ContactHandler{Svc: &service.ContactService{Limiter: limiter}},
		StatsHandler:     &StatsHandler{Client: stats.NewClient("", "", "")},
	})
	return e
}

func doJSON(e *echo.Echo, method, path, body, realIP string, cookies ...*http.Cookie) *http.Response {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if realIP != "" {
		req.Header.Set(echo.HeaderXRealIP, realIP)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Result()
}

func cookieByName(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func login(t *testing.T, e *echo.Echo, realIP, body string) *http.Response {
	t.Helper()
	resp := doJSON(e, http.MethodPost, "/api/auth/login", body, realIP)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return resp
}

func TestLoginEndpoint_CookieAttributes(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	resp := login(t, e, "198.51.100.1", `{"username":"admin","password":"secret"}`)

	access := cookieByName(t, resp, AccessCookieName)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.HttpOnly)
	assert.InDelta(t, 900, access.MaxAge, 2, "access cookie lives 15 minutes")

	refresh := cookieByName(t, resp, RefreshCookieName)
	assert.Equal(t, "/api/auth/refresh-token", refresh.Path, "refresh cookie only travels to the rotation endpoint")
	assert.True(t, refresh.HttpOnly)
	assert.InDelta(t, 86400, refresh.MaxAge, 2, "without remember-me the refresh cookie lives a day")
}

func TestLoginEndpoint_RememberMe(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	resp := login(t, e, "198.51.100.2", `{"username":"admin","password":"secret","remember_me":true}`)

	refresh := cookieByName(t, resp, RefreshCookieName)
	assert.InDelta(t, 15*24*3600, refresh.MaxAge, 2, "remember-me stretches the refresh cookie to 15 days")
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	resp := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`, "198.51.100.3")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Unauthorized", body["error"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestLoginEndpoint_RateLimited(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	for i := 0; i < 5; i++ {
		resp := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`, "198.51.100.4")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"secret"}`, "198.51.100.4")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "the 6th rapid attempt is refused before credentials are checked")
}

func TestRefreshEndpoint_RotatesAndRejectsReplay(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	loginResp := login(t, e, "198.51.100.5", `{"username":"admin","password":"secret"}`)
	oldRefresh := cookieByName(t, loginResp, RefreshCookieName)

	resp := doJSON(e, http.MethodPost, "/api/auth/refresh-token", "", "",
		&http.Cookie{Name: RefreshCookieName, Value: oldRefresh.Value})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	newRefresh := cookieByName(t, resp, RefreshCookieName)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)
	assert.InDelta(t, 15*24*3600, newRefresh.MaxAge, 2, "rotation always grants the long lifetime")

	replay := doJSON(e, http.MethodPost, "/api/auth/refresh-token", "", "",
		&http.Cookie{Name: RefreshCookieName, Value: oldRefresh.Value})
	assert.Equal(t, http.StatusUnauthorized, replay.StatusCode, "a rotated-away token is dead")
}

func TestRefreshEndpoint_MissingCookie(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	resp := doJSON(e, http.MethodPost, "/api/auth/refresh-token", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutEndpoint_ClearsCookiesAndDenylists(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	loginResp := login(t, e, "198.51.100.6", `{"username":"admin","password":"secret"}`)
	access := cookieByName(t, loginResp, AccessCookieName)
	refresh := cookieByName(t, loginResp, RefreshCookieName)

	// The surrendered access token works before logout.
	check := doJSON(e, http.MethodGet, "/api/auth/check", "", "",
		&http.Cookie{Name: AccessCookieName, Value: access.Value})
	require.Equal(t, http.StatusOK, check.StatusCode)

	resp := doJSON(e, http.MethodPost, "/api/auth/logout", "", "",
		&http.Cookie{Name: AccessCookieName, Value: access.Value},
		&http.Cookie{Name: RefreshCookieName, Value: refresh.Value})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Negative(t, cookieByName(t, resp, AccessCookieName).MaxAge)
	assert.Negative(t, cookieByName(t, resp, RefreshCookieName).MaxAge)

	// The still-unexpired token is now denylisted: anonymous again.
	check = doJSON(e, http.MethodGet, "/api/auth/check", "", "",
		&http.Cookie{Name: AccessCookieName, Value: access.Value})
	assert.Equal(t, http.StatusUnauthorized, check.StatusCode)

	// Logging out twice is fine.
	resp = doJSON(e, http.MethodPost, "/api/auth/logout", "", "",
		&http.Cookie{Name: AccessCookieName, Value: access.Value},
		&http.Cookie{Name: RefreshCookieName, Value: refresh.Value})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogoutEndpoint_WithoutTokens(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	resp := doJSON(e, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "revoking nothing is still a logout")
}

func TestCheckEndpoint(t *testing.T) {
	t.Parallel()

	e := newServer(t)
	resp := doJSON(e, http.MethodGet, "/api/auth/check", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	loginResp := login(t, e, "198.51.100.7", `{"username":"admin","password":"secret"}`)
	access := cookieByName(t, loginResp, AccessCookieName)

	resp = doJSON(e, http.MethodGet, "/api/auth/check", "", "",
		&http.Cookie{Name: AccessCookieName, Value: access.Value})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	t.Parallel()

	e := newServer(t)

	resp := doJSON(e, http.MethodPost, "/api/blog", `{"title":"t","content":"c"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(e, http.MethodGet, "/api/blog", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reads stay public")

	loginResp := login(t, e, "198.51.100.8", `{"username":"admin","password":"secret"}`)
	access := cookieByName(t, loginResp, AccessCookieName)

	resp = doJSON(e, http.MethodPost, "/api/blog", `{"title":"t","content":"c"}`, "",
		&http.Cookie{Name: AccessCookieName, Value: access.Value})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
