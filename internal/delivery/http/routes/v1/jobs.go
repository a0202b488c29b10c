package v1

import (
	"hirelink/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts the public job listing; no authentication.
func RegisterJobs(r fiber.Router, jobHandler *handler.JobHandler) {
	if r == nil {
		return
	}
	if jobHandler == nil {
		return
	}

	jobHandler.RegisterRoutes(r)
}
