package routes

import (
	"net/http"

	"hirelink/internal/delivery/http/handler"
	"hirelink/internal/delivery/http/middleware"
	v1 "hirelink/internal/delivery/http/routes/v1"
	"hirelink/internal/pkg/jwt"
	"hirelink/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Registry struct {
	health   *handler.HealthHandler
	ws       *ws.Handler
	handlers v1.Handlers
	auth     *middleware.AuthMiddleware
	metrics  http.Handler
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, handlers v1.Handlers, auth *middleware.AuthMiddleware, metrics http.Handler) *Registry {
	return &Registry{health: health, ws: wsHandler, handlers: handlers, auth: auth, metrics: metrics}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
	if r.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.metrics))
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil {
		return
	}
	g := app.Group("/ws")
	g.Get("/jobs", r.ws.HandleJobs)
	g.Get("/hr", r.auth.Require(jwt.RoleHR), r.ws.HandleHR)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.handlers, r.auth)
}
