package ws

import (
	"net/http"

	"hirelink/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

func NewHandler(hub *Hub, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, logger: logger.Named("ws")}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleJobs streams job_posted events to anyone.
func (h *Handler) HandleJobs(c fiber.Ctx) error {
	return h.serve(c, TopicJobs)
}

// HandleHR streams application events for the authenticated HR account.
func (h *Handler) HandleHR(c fiber.Ctx) error {
	id, ok := middleware.SubjectID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.serve(c, HRTopic(id), TopicJobs)
}

func (h *Handler) serve(c fiber.Ctx, topics ...string) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("WS upgrade error", zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn, topics...)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
