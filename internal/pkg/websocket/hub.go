package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients and pushes notification events
// to them. Clients are keyed by user ID; a user may hold several connections
// (multiple tabs or devices) and every connection receives the event.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Channel for outbound events
	events chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event represents a notification event pushed over WebSocket.
type Event struct {
	// User this event is addressed to
	UserID int64 `json:"-"`

	// Notification type tag (ENROLLMENT_APPROVED, CERTIFICATE_READY, ...)
	Type string `json:"type"`

	// Notification ID from the database
	NotificationID int64 `json:"notificationId,omitempty"`

	// Display title and message
	Title   string `json:"title"`
	Message string `json:"message"`

	// Optional link the client should navigate to
	ActionURL string `json:"actionUrl,omitempty"`

	// Timestamp when the event was created
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		events:     make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and event dispatch.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.events:
			h.dispatchEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true

	h.logger.Info().
		Int64("userID", userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Notification client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; ok {
		if _, ok := h.clients[userID][client]; ok {
			delete(h.clients[userID], client)
			close(client.send)

			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}

			h.logger.Info().
				Int64("userID", userID).
				Msg("Notification client unregistered")
		}
	}
}

// dispatchEvent sends an event to every connection held by the target user.
// Runs on the hub goroutine, so stale clients are removed directly instead
// of through the unregister channel, which only the hub itself drains.
func (h *Hub) dispatchEvent(event *Event) {
	h.mu.RLock()

	clients, ok := h.clients[event.UserID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Int64("userID", event.UserID).
			Msg("Failed to marshal notification event")
		return
	}

	var stale []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full; drop them
			stale = append(stale, client)
		}
	}
	count := len(clients)
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Int64("userID", event.UserID).
		Int("connectionCount", count).
		Msg("Notification event dispatched")
}

// Push queues an event for delivery. Delivery is best effort: when the hub's
// queue is full the event is dropped rather than blocking the caller.
func (h *Hub) Push(event *Event) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn().
			Int64("userID", event.UserID).
			Str("type", event.Type).
			Msg("Notification event queue full, event dropped")
	}
}

// ConnectionCount returns the number of open connections for a user.
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		return len(clients)
	}
	return 0
}
