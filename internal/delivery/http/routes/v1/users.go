package v1

import (
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

// RegisterUsers mounts the job seeker API. Registration and login stay
// public; the rest requires a user token.
func RegisterUsers(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	h.Auth.RegisterUserRoutes(r)

	protected := r.Group("", authMw.Require(jwt.RoleUser))
	h.User.RegisterRoutes(protected)
	h.Application.RegisterRoutes(protected)
	h.Recommendation.RegisterRoutes(protected)
}

// RegisterHR mounts the recruiter API behind an HR token.
func RegisterHR(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	h.Auth.RegisterHRRoutes(r)

	protected := r.Group("", authMw.Require(jwt.RoleHR))
	h.Auth.RegisterHRAccountRoutes(protected)
	h.Job.RegisterHRRoutes(protected)
	h.User.RegisterHRRoutes(protected)
	h.Application.RegisterHRRoutes(protected)
	h.Candidate.RegisterRoutes(protected)
}
