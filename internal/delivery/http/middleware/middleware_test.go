package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hirelink/internal/pkg/jwt"
	"hirelink/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(jwtSvc jwt.Service, roles ...jwt.Role) *fiber.App {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(nil, nil).Middleware())
	app.Use(NewErrorMiddleware(nil).Middleware())

	auth := NewAuthMiddleware(jwtSvc)
	app.Get("/private", auth.Require(roles...), func(c fiber.Ctx) error {
		id, ok := SubjectID(c)
		if !ok {
			return errors.New("missing subject")
		}
		return response.Success(c, fiber.StatusOK, "", id.String())
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("secret"))
	})
	app.Get("/ranking", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "Error computing recommendations", nil, errors.New("secret")).Public()
	})
	app.Get("/busy", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "Embedding service unavailable", nil, nil)
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "", nil, nil)
	})
	return app
}

func readBody(t *testing.T, resp *http.Response) response.SemanticResponse {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out response.SemanticResponse
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestAuth_MissingToken(t *testing.T) {
	app := newTestApp(jwt.NewHMACService("a", "r", time.Minute, time.Hour))
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_BearerAndCookie(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	app := newTestApp(svc, jwt.RoleUser)
	id := uuid.New()
	tok, err := svc.GenerateAccessToken(id, "u@example.com", jwt.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, id.String(), readBody(t, resp).Data)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req = httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tok})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuth_WrongRole(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	app := newTestApp(svc, jwt.RoleHR)
	tok, err := svc.GenerateAccessToken(uuid.New(), "", jwt.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	app := newTestApp(svc)
	tok, err := svc.GenerateRefreshToken(uuid.New(), jwt.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestErrorMiddleware(t *testing.T) {
	app := newTestApp(jwt.NewHMACService("a", "r", time.Minute, time.Hour))

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/boom", status: fiber.StatusInternalServerError, message: response.MessageInternalServerError},
		{path: "/ranking", status: fiber.StatusInternalServerError, message: "Error computing recommendations"},
		{path: "/busy", status: fiber.StatusServiceUnavailable, message: "Embedding service unavailable"},
		{path: "/panic", status: fiber.StatusInternalServerError, message: response.MessageInternalServerError},
		{path: "/conflict", status: fiber.StatusConflict, message: response.MessageConflict},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, readBody(t, resp).Message)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = BearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer")
	assert.False(t, ok)
}
