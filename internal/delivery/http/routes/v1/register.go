package v1

import (
	"hirelink/internal/delivery/http/handler"
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Job            *handler.JobHandler
	Application    *handler.ApplicationHandler
	Recommendation *handler.RecommendationHandler
	Candidate      *handler.CandidateHandler
	Interview      *handler.InterviewHandler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	h.Auth.RegisterRoutes(r.Group("/auth"))
	RegisterJobs(r.Group("/jobs"), h.Job)
	RegisterUsers(r.Group("/user"), h, authMw)
	RegisterHR(r.Group("/hr"), h, authMw)

	interviewGroup := r.Group("/interview", authMw.Require(jwt.RoleUser))
	h.Interview.RegisterRoutes(interviewGroup)
}
