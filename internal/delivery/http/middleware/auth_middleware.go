package middleware

import (
	"errors"
	"strings"

	"hirelink/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxSubjectIDKey = "subject_id"
	CtxEmailKey     = "email"
	CtxRoleKey      = "role"

	// AccessTokenCookie carries the access token for browser clients.
	AccessTokenCookie = "access_token"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Require authenticates the request and, when roles are given, rejects
// callers whose role is not listed.
func (m *AuthMiddleware) Require(roles ...jwt.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			token = strings.TrimSpace(c.Cookies(AccessTokenCookie))
			ok = token != ""
		}
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		if len(roles) > 0 && !hasRole(roles, claims.Role) {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}

		c.Locals(CtxSubjectIDKey, claims.SubjectID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
}

// SubjectID returns the authenticated account id stored by Require.
func SubjectID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxSubjectIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func hasRole(roles []jwt.Role, r jwt.Role) bool {
	for _, want := range roles {
		if want == r {
			return true
		}
	}
	return false
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
