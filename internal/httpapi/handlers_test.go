package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/categories"
	"fintrack/internal/config"
	"fintrack/internal/groups"
	"fintrack/internal/transactions"
	"fintrack/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router *gin.Engine
	codec  *auth.Codec
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewCodec(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	v := auth.NewVerifier(codec)

	h := Handlers{
		Codec:        codec,
		Users:        users.NewService(users.NewMemoryRepository(), codec),
		Groups:       groups.NewService(groups.NewMemoryRepository(), nil),
		Categories:   categories.NewService(categories.NewMemoryRepository()),
		Transactions: transactions.NewService(transactions.NewMemoryRepository()),
	}

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/me", auth.Require(v, auth.Anyone()), h.Me)
	api.GET("/admin/users", auth.Require(v, auth.AdminOnly()), h.AdminListUsers)
	api.GET("/groups/:group/transactions",
		auth.RequireGroupByName(v, h.Groups, "group"), h.ListGroupTransactions)

	return fixture{router: r, codec: codec}
}

func (f fixture) do(t *testing.T, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f fixture) registerAndLogin(t *testing.T) []*http.Cookie {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"tester","email":"tester@test.com","password":"correct horse"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/login",
		`{"username":"tester","password":"correct horse"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	return cookies
}

func TestLoginSetsSessionCookies(t *testing.T) {
	f := newFixture(t)
	cookies := f.registerAndLogin(t)

	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	access := byName[auth.AccessCookieName]
	require.NotNil(t, access)
	require.Equal(t, "/api", access.Path)
	require.Equal(t, 3600, access.MaxAge)
	require.True(t, access.HttpOnly)
	require.True(t, access.Secure)
	require.NotNil(t, byName[auth.RefreshCookieName])
}

func TestMeRequiresSession(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := f.registerAndLogin(t)
	w = f.do(t, http.MethodGet, "/api/me", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "tester", body["username"])
	require.Equal(t, "tester@test.com", body["email"])
}

func TestAdminRouteDeniesRegularUser(t *testing.T) {
	f := newFixture(t)
	cookies := f.registerAndLogin(t)

	w := f.do(t, http.MethodGet, "/api/admin/users", "", cookies)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestExpiredAccessTokenIsRenewedSilently(t *testing.T) {
	f := newFixture(t)
	f.registerAndLogin(t)

	claims := auth.Claims{Username: "tester", Email: "tester@test.com", Role: auth.RoleRegular, UserID: "u1"}
	now := time.Now()
	expired, err := f.codec.Sign(claims, -time.Minute, now)
	require.NoError(t, err)
	refresh, err := f.codec.Sign(claims, 24*time.Hour, now)
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/me", "", []*http.Cookie{
		{Name: auth.AccessCookieName, Value: expired},
		{Name: auth.RefreshCookieName, Value: refresh},
	})
	require.Equal(t, http.StatusOK, w.Code)

	renewed := w.Result().Cookies()
	require.Len(t, renewed, 1)
	require.Equal(t, auth.AccessCookieName, renewed[0].Name)
	require.Equal(t, "/api", renewed[0].Path)
	require.Equal(t, 3600, renewed[0].MaxAge)
}

func TestGroupRouteMembership(t *testing.T) {
	f := newFixture(t)
	cookies := f.registerAndLogin(t)

	// No such group yet.
	w := f.do(t, http.MethodGet, "/api/groups/household/transactions", "", cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}
