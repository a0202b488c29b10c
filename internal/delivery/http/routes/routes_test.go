package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hirelink/internal/delivery/http/handler"
	"hirelink/internal/delivery/http/middleware"
	v1 "hirelink/internal/delivery/http/routes/v1"
	"hirelink/internal/domain/hr"
	"hirelink/internal/domain/user"
	"hirelink/internal/pkg/jwt"
	ucauth "hirelink/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct{}

func (stubAuth) RegisterUser(context.Context, ucauth.RegisterUserInput) (user.Profile, error) {
	return user.Profile{}, ucauth.ErrEmailAlreadyRegistered
}
func (stubAuth) RegisterHR(context.Context, ucauth.RegisterHRInput) (hr.HR, error) {
	return hr.HR{}, ucauth.ErrEmailAlreadyRegistered
}
func (stubAuth) LoginUser(context.Context, ucauth.LoginInput) (user.User, ucauth.Tokens, error) {
	return user.User{}, ucauth.Tokens{}, ucauth.ErrInvalidInput
}
func (stubAuth) LoginHR(context.Context, ucauth.LoginInput) (hr.HR, ucauth.Tokens, error) {
	return hr.HR{}, ucauth.Tokens{}, ucauth.ErrInvalidCredentials
}
func (stubAuth) Refresh(context.Context, string) (ucauth.Tokens, error) {
	return ucauth.Tokens{}, ucauth.ErrInvalidRefreshToken
}
func (stubAuth) GetHR(_ context.Context, id uuid.UUID) (hr.HR, error) {
	return hr.HR{ID: id, Company: "Acme"}, nil
}

func newRoutedApp(t *testing.T) (*fiber.App, *jwt.HMACService) {
	t.Helper()
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)

	// Only the auth handler has a working use case; the gated routes must
	// be rejected before any other handler runs.
	handlers := v1.Handlers{
		Auth:           handler.NewAuthHandler(stubAuth{}, handler.CookieConfig{}),
		User:           &handler.UserHandler{},
		Job:            &handler.JobHandler{},
		Application:    &handler.ApplicationHandler{},
		Recommendation: &handler.RecommendationHandler{},
		Candidate:      &handler.CandidateHandler{},
		Interview:      &handler.InterviewHandler{},
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewRegistry(handler.NewHealthHandler(nil), nil, handlers, middleware.NewAuthMiddleware(jwtSvc), nil).Register(app)
	return app, jwtSvc
}

func token(t *testing.T, svc *jwt.HMACService, role jwt.Role) string {
	t.Helper()
	tok, err := svc.GenerateAccessToken(uuid.New(), "someone@example.com", role)
	require.NoError(t, err)
	return tok
}

func status(t *testing.T, app *fiber.App, method, target, bearer, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestRegistry_RoleGating(t *testing.T) {
	app, jwtSvc := newRoutedApp(t)
	userTok := token(t, jwtSvc, jwt.RoleUser)
	hrTok := token(t, jwtSvc, jwt.RoleHR)

	tests := []struct {
		name   string
		method string
		target string
		bearer string
		want   int
	}{
		{"user token on hr dashboard", http.MethodGet, "/api/v1/hr/dashboard", userTok, fiber.StatusForbidden},
		{"user token on hr search", http.MethodGet, "/api/v1/hr/search?query=go", userTok, fiber.StatusForbidden},
		{"user token on hr profile", http.MethodGet, "/api/v1/hr/profile", userTok, fiber.StatusForbidden},
		{"hr token on user profile", http.MethodGet, "/api/v1/user/profile", hrTok, fiber.StatusForbidden},
		{"hr token on interview", http.MethodPost, "/api/v1/interview/sessions", hrTok, fiber.StatusForbidden},
		{"no token on hr dashboard", http.MethodGet, "/api/v1/hr/dashboard", "", fiber.StatusUnauthorized},
		{"no token on user jobs", http.MethodGet, "/api/v1/user/jobs", "", fiber.StatusUnauthorized},
		{"hr token on hr profile", http.MethodGet, "/api/v1/hr/profile", hrTok, fiber.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, status(t, app, tc.method, tc.target, tc.bearer, ""))
		})
	}
}

func TestRegistry_PublicAuthRoutes(t *testing.T) {
	app, _ := newRoutedApp(t)

	// the stub answers 409 and 400, never 401, so these reached the handler
	assert.Equal(t, fiber.StatusConflict, status(t, app, http.MethodPost, "/api/v1/user/register", "", `{"email":"a@example.com","password":"secret123"}`))
	assert.Equal(t, fiber.StatusConflict, status(t, app, http.MethodPost, "/api/v1/hr/register", "", `{"email":"h@example.com","password":"secret123","name":"H","company":"Acme"}`))
	assert.Equal(t, fiber.StatusBadRequest, status(t, app, http.MethodPost, "/api/v1/user/login", "", `{"email":"a@example.com","password":"wrong"}`))
	assert.Equal(t, fiber.StatusOK, status(t, app, http.MethodGet, "/health", "", ""))
}
