package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"hirelink/internal/delivery/http/dto"
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/domain/hr"
	"hirelink/internal/domain/user"
	"hirelink/internal/pkg/response"
	ucauth "hirelink/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthUsecase interface {
	RegisterUser(ctx context.Context, in ucauth.RegisterUserInput) (user.Profile, error)
	RegisterHR(ctx context.Context, in ucauth.RegisterHRInput) (hr.HR, error)
	LoginUser(ctx context.Context, in ucauth.LoginInput) (user.User, ucauth.Tokens, error)
	LoginHR(ctx context.Context, in ucauth.LoginInput) (hr.HR, ucauth.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (ucauth.Tokens, error)
	GetHR(ctx context.Context, id uuid.UUID) (hr.HR, error)
}

// CookieConfig controls the access token cookie set on login.
type CookieConfig struct {
	Secure bool
	Domain string
	MaxAge time.Duration
}

type AuthHandler struct {
	uc     AuthUsecase
	cookie CookieConfig
}

func NewAuthHandler(uc AuthUsecase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

func (h *AuthHandler) RegisterUserRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/register", h.RegisterUser)
	r.Post("/login", h.LoginUser)
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) RegisterHRRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/register", h.RegisterHR)
	r.Post("/login", h.LoginHR)
	r.Post("/logout", h.Logout)
}

// RegisterHRAccountRoutes expects r to be behind an HR token.
func (h *AuthHandler) RegisterHRAccountRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/profile", h.HRProfile)
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) RegisterUser(c fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.RegisterUser(c.Context(), ucauth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.ToProfile(),
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "User registered successfully", dto.NewProfileResponse(p))
}

func (h *AuthHandler) RegisterHR(c fiber.Ctx) error {
	var req dto.RegisterHRRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	acc, err := h.uc.RegisterHR(c.Context(), ucauth.RegisterHRInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Company:  req.Company,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "HR registered successfully", dto.NewHRResponse(acc))
}

func (h *AuthHandler) LoginUser(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, tokens, err := h.uc.LoginUser(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	h.setAccessCookie(c, tokens.AccessToken)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.LoginResponse{
		Account:       dto.NewUserSummary(usr),
		TokenResponse: dto.NewTokenResponse(tokens),
	})
}

func (h *AuthHandler) LoginHR(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	acc, tokens, err := h.uc.LoginHR(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	h.setAccessCookie(c, tokens.AccessToken)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.LoginResponse{
		Account:       dto.NewHRResponse(acc),
		TokenResponse: dto.NewTokenResponse(tokens),
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return response.Success(c, fiber.StatusOK, "Logged out successfully", nil)
}

// Refresh accepts the refresh token as a Bearer header or in the body.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		var req dto.RefreshRequest
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&req); err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
			}
		}
		tok = strings.TrimSpace(req.RefreshToken)
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	h.setAccessCookie(c, tokens.AccessToken)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTokenResponse(tokens))
}

func (h *AuthHandler) HRProfile(c fiber.Ctx) error {
	hrID, err := subjectID(c)
	if err != nil {
		return err
	}

	acc, err := h.uc.GetHR(c.Context(), hrID)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewHRResponse(acc))
}

func (h *AuthHandler) setAccessCookie(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, ucauth.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, ucauth.ErrAccountNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Account not found", nil, err)
	default:
		return internalError(err)
	}
}
