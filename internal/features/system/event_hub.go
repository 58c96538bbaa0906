package system

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// EventHub fans dashboard events out to websocket subscribers. Clients
// subscribe to a single dashboard via the `dashboard` query parameter.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*websocket.Conn]bool
	logger      *zap.Logger
}

type event struct {
	Dashboard string      `json:"dashboard"`
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEventHub(logger *zap.Logger) *EventHub {
	return &EventHub{
		subscribers: make(map[string]map[*websocket.Conn]bool),
		logger:      logger,
	}
}

// Broadcast sends an event to every connection subscribed to the dashboard.
// Dead connections are dropped on write failure.
func (h *EventHub) Broadcast(dashboardID, eventName string, payload interface{}) {
	msg, err := json.Marshal(event{
		Dashboard: dashboardID,
		Event:     eventName,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.Error("failed to encode event", zap.String("event", eventName), zap.Error(err))
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subscribers[dashboardID]))
	for conn := range h.subscribers[dashboardID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.unsubscribe(dashboardID, conn)
		}
	}
}

func (h *EventHub) subscribe(dashboardID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[dashboardID] == nil {
		h.subscribers[dashboardID] = make(map[*websocket.Conn]bool)
	}
	h.subscribers[dashboardID][conn] = true
}

func (h *EventHub) unsubscribe(dashboardID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers[dashboardID], conn)
	if len(h.subscribers[dashboardID]) == 0 {
		delete(h.subscribers, dashboardID)
	}
}

// HandleWebSocket keeps the connection registered until the client goes
// away. Incoming messages are read only to detect disconnects.
func (h *EventHub) HandleWebSocket(c *websocket.Conn) {
	dashboardID := c.Query("dashboard")
	if dashboardID == "" {
		c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "dashboard query parameter required"))
		c.Close()
		return
	}

	h.subscribe(dashboardID, c)
	defer func() {
		h.unsubscribe(dashboardID, c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
