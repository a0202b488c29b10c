package ws

import (
	"sync"

	"hirelink/internal/metrics"

	"go.uber.org/zap"
)

type message struct {
	topic   string
	payload []byte
}

// Hub fans published messages out to the clients subscribed to a topic.
// All subscription state is owned by the Run goroutine.
type Hub struct {
	topics     map[string]map[*Client]struct{}
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	mutex   sync.RWMutex
	clients int

	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewHub(logger *zap.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		topics:     make(map[string]map[*Client]struct{}),
		broadcast:  make(chan message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger.Named("ws"),
		metrics:    m,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for _, subs := range h.topics {
				for c := range subs {
					delete(subs, c)
					c.closeSend()
				}
			}
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			for _, t := range client.topics {
				subs, ok := h.topics[t]
				if !ok {
					subs = make(map[*Client]struct{})
					h.topics[t] = subs
				}
				subs[client] = struct{}{}
			}
			total := h.adjustClients(1)
			h.logger.Debug("WS connected", zap.Strings("topics", client.topics), zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil || !h.remove(client) {
				continue
			}
			total := h.adjustClients(-1)
			h.logger.Debug("WS disconnected", zap.Int("total_clients", total))

		case msg := <-h.broadcast:
			subs := h.topics[msg.topic]
			for client := range subs {
				select {
				case client.send <- msg.payload:
				default:
					if h.remove(client) {
						h.adjustClients(-1)
					}
				}
			}
			h.logger.Debug("WS broadcast", zap.String("topic", msg.topic), zap.Int("clients", len(subs)))
		}
	}
}

// remove drops client from every topic and closes its send channel once.
func (h *Hub) remove(client *Client) bool {
	found := false
	for _, t := range client.topics {
		subs := h.topics[t]
		if _, ok := subs[client]; ok {
			delete(subs, client)
			found = true
		}
		if len(subs) == 0 {
			delete(h.topics, t)
		}
	}
	if found {
		client.closeSend()
	}
	return found
}

func (h *Hub) adjustClients(delta int) int {
	h.mutex.Lock()
	h.clients += delta
	total := h.clients
	h.mutex.Unlock()
	h.metrics.SetWSClients(total)
	return total
}

func (h *Hub) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.done) })
}

// Register subscribes client. Once the hub is stopped the client's send
// channel is closed instead, so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	if h.stopped() {
		client.closeSend()
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || h.stopped() {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Publish queues payload for topic without blocking; it is dropped when the
// queue is full.
func (h *Hub) Publish(topic string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message{topic: topic, payload: payload}:
	default:
		h.logger.Warn("WS broadcast dropped", zap.String("topic", topic), zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.clients
}
