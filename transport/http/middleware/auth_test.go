package middleware

import (
	"net/http"
	"net/http/httptest"
	"rental/config"
	"rental/infras/jwt"
	jwtMocks "rental/infras/jwt/mocks"
	"rental/infras/otel/mocks"
	"rental/permissions"
	"rental/shared/constant"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const guardPermissions = `{
  "endpoints": [
    {"method": "POST", "path": "/v1/auth/login", "skip": true},
    {"method": "DELETE", "path": "/v1/users/{id}", "permissions": ["superadmin", "admin"]}
  ]
}`

type guardFixture struct {
	router   chi.Router
	jwt      *jwtMocks.MockJWT
	recorder *mocks.Recorder
}

func newGuard(t *testing.T) guardFixture {
	t.Helper()

	data, err := permissions.Load([]byte(guardPermissions))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	f := guardFixture{
		jwt:      jwtMocks.NewMockJWT(gomock.NewController(t)),
		recorder: mocks.NewRecorder(),
	}

	g := NewAuthRoleMiddleware(f.jwt, f.recorder, data, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		if id, _ := r.Context().Value(constant.ContextKeyUserID).(string); id != "" {
			w.Header().Set("X-Caller", id)
		}

		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(g.APIKey, g.Auth, g.RBAC)
		r.Post("/v1/auth/login", ok)
		r.Get("/v1/units", ok)
		r.Delete("/v1/users/{id}", ok)
	})

	f.router = router

	return f
}

func (f guardFixture) do(method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer " + token}
}

func TestGuard_PublicRouteNeedsNoToken(t *testing.T) {
	f := newGuard(t)

	rec := f.do(http.MethodPost, "/v1/auth/login", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, f.recorder.Errors())
}

func TestGuard_MissingToken(t *testing.T) {
	f := newGuard(t)

	rec := f.do(http.MethodGet, "/v1/units", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing authorization header")
	assert.Len(t, f.recorder.Errors(), 1)
}

func TestGuard_MalformedHeader(t *testing.T) {
	f := newGuard(t)

	rec := f.do(http.MethodGet, "/v1/units", map[string]string{constant.RequestHeaderAuthorization: "Token abc"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid authorization header format")
}

func TestGuard_ExpiredToken(t *testing.T) {
	f := newGuard(t)
	f.jwt.EXPECT().ValidateToken(gomock.Any(), "stale", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

	rec := f.do(http.MethodGet, "/v1/units", bearer("stale"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestGuard_ClaimsWithoutRole(t *testing.T) {
	f := newGuard(t)
	f.jwt.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(&jwt.Claims{UserID: "u-1"}, nil)

	rec := f.do(http.MethodGet, "/v1/units", bearer("t"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token claims")
}

func TestGuard_AnyRoleOnUnlistedRoute(t *testing.T) {
	f := newGuard(t)
	f.jwt.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "u-1", Role: constant.RoleUser}, nil)

	rec := f.do(http.MethodGet, "/v1/units", bearer("t"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-1", rec.Header().Get("X-Caller"))
}

func TestGuard_RoleNotAllowed(t *testing.T) {
	f := newGuard(t)
	f.jwt.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "u-1", Role: constant.RoleUser}, nil)

	rec := f.do(http.MethodDelete, "/v1/users/u-2", bearer("t"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, f.recorder.Errors(), 1)
}

func TestGuard_RoleAllowed(t *testing.T) {
	f := newGuard(t)
	f.jwt.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "u-9", Role: constant.RoleAdmin}, nil)

	rec := f.do(http.MethodDelete, "/v1/users/u-2", bearer("t"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGuard_APIKey(t *testing.T) {
	f := newGuard(t)

	rec := f.do(http.MethodDelete, "/v1/users/u-2", map[string]string{constant.RequestHeaderAPIKey: "internal-key"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodGet, "/v1/units", map[string]string{constant.RequestHeaderAPIKey: "guess"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
