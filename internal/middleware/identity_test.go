package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arslanca/portfolio/internal/config"
	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/repo"
	"github.com/arslanca/portfolio/internal/tokens"
)

func newGateEnv(t *testing.T) (*Gate, *repo.GormRepo) {
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
	require.NoError(t, rp.DB.Create(&models.User{
		Username:     "alice",
		PasswordHash: "irrelevant",
		Role:         "admin",
	}).Error)

	codec := &tokens.Codec{
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	return &Gate{Repo: rp, Codec: codec}, rp
}

// runGate sends one request through Establish and reports the identity
// the terminal handler observed.
func runGate(t *testing.T, g *Gate, decorate func(*http.Request)) (Identity, bool, int) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var id Identity
	var ok bool
	handler := g.Establish(func(c echo.Context) error {
		id, ok = FromEcho(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return id, ok, rec.Code
}

func TestGate_NoToken_Anonymous(t *testing.T) {
	t.Parallel()

	g, _ := newGateEnv(t)
	_, ok, code := runGate(t, g, nil)
	assert.False(t, ok)
	assert.Equal(t, http.StatusOK, code, "the gate never rejects")
}

func TestGate_BearerHeader_SetsIdentity(t *testing.T) {
	t.Parallel()

	g, _ := newGateEnv(t)
	token, _, err := g.Codec.GenerateAccess("alice", "admin", 15*time.Minute)
	require.NoError(t, err)

	id, ok, _ := runGate(t, g, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.True(t, ok)
	assert.Equal(t, "alice", id.Subject)
	assert.Equal(t, "admin", id.Role)
}

func TestGate_AccessCookie_SetsIdentity(t *testing.T) {
	t.Parallel()

	g, _ := newGateEnv(t)
	token, _, err := g.Codec.GenerateAccess("alice", "admin", 15*time.Minute)
	require.NoError(t, err)

	id, ok, _ := runGate(t, g, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
	})
	require.True(t, ok)
	assert.Equal(t, "alice", id.Subject)
}

func TestGate_RevokedToken_FallsThroughAnonymous(t *testing.T) {
	t.Parallel()

	g, rp := newGateEnv(t)
	token, exp, err := g.Codec.GenerateAccess("alice", "admin", 15*time.Minute)
	require.NoError(t, err)
	require.NoError(t, rp.AddRevokedToken(t.Context(), tokens.Digest(token), exp))

	_, ok, code := runGate(t, g, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	assert.False(t, ok, "a denylisted token is dead before its signature is checked")
	assert.Equal(t, http.StatusOK, code)
}

func TestGate_BadTokens_FallThroughAnonymous(t *testing.T) {
	t.Parallel()

	g, _ := newGateEnv(t)

	expired, _, err := g.Codec.GenerateAccess("alice", "admin", -time.Minute)
	require.NoError(t, err)
	unknown, _, err := g.Codec.GenerateAccess("nobody", "admin", 15*time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":         "not-a-jwt",
		"expired":         expired,
		"unknown_subject": unknown,
	} {
		_, ok, code := runGate(t, g, func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		})
		assert.False(t, ok, "%s token must fall through anonymous", name)
		assert.Equal(t, http.StatusOK, code, "%s token must not produce an error", name)
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	err := RequireAuth(next)(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.Set("identity", Identity{Subject: "alice", Role: "admin"})
	assert.NoError(t, RequireAuth(next)(c))
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.Set("identity", Identity{Subject: "alice", Role: "user"})
	err := RequireRole("admin")(next)(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.Set("identity", Identity{Subject: "alice", Role: "admin"})
	assert.NoError(t, RequireRole("admin")(next)(c))
}
