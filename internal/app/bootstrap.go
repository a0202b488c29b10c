package app

import (
	"fmt"
	"strings"

	"hirelink/internal/config"
	"hirelink/internal/delivery/http/handler"
	"hirelink/internal/delivery/http/middleware"
	"hirelink/internal/delivery/http/routes"
	v1 "hirelink/internal/delivery/http/routes/v1"
	"hirelink/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over an initialised container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		BodyLimit:    cfg.App.BodyLimit,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every dependency and starts the websocket hub. The
// returned cleanup releases them.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	go c.Hub.Run()

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(c.Logger, c.Metrics)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cookie := handler.CookieConfig{
		Secure: c.Config.JWT.CookieSecure,
		Domain: c.Config.JWT.CookieDomain,
		MaxAge: c.Config.JWT.AccessExpiresIn,
	}
	handlers := v1.Handlers{
		Auth:           handler.NewAuthHandler(c.Auth, cookie),
		User:           handler.NewUserHandler(c.Profiles),
		Job:            handler.NewJobHandler(c.JobPosts),
		Application:    handler.NewApplicationHandler(c.Apply),
		Recommendation: handler.NewRecommendationHandler(c.Recommendations),
		Candidate:      handler.NewCandidateHandler(c.Searcher),
		Interview:      handler.NewInterviewHandler(c.Interviews),
	}

	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"postgres": c.DB,
		"redis":    c.Redis,
	})

	routes.NewRegistry(
		health,
		ws.NewHandler(c.Hub, c.Logger),
		handlers,
		middleware.NewAuthMiddleware(c.JWT),
		c.Metrics.Handler(),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
