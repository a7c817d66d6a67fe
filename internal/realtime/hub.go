package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"drivehire-backend/internal/logger"
)

// Event is the payload pushed over the realtime channel.
type Event struct {
	Channel  string      `json:"channel"`
	Category string      `json:"category"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
}

// Client represents one connected websocket.
type Client struct {
	UserID   int64
	Conn     *websocket.Conn
	Send     chan []byte
	channels map[string]bool
	hub      *Hub
}

// Hub maintains the set of active clients and fans events out to
// channel subscribers. Channels are keyed "user_<id>" and
// "booking_<id>"; every client is implicitly subscribed to its own user
// channel.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
	}
}

// Run starts the hub loop. Call it once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			logger.Debug("realtime client connected", "user_id", client.UserID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			logger.Debug("realtime client disconnected", "user_id", client.UserID)

		case event := <-h.events:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Error("failed to marshal realtime event", "error", err)
				continue
			}
			h.mutex.Lock()
			for client := range h.clients {
				if !client.subscribed(event.Channel) {
					continue
				}
				select {
				case client.Send <- payload:
				default:
					// Slow consumer, drop it.
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues an event for delivery. Best effort: if the hub's buffer
// is full the event is dropped, never blocking the caller.
func (h *Hub) Publish(event Event) {
	select {
	case h.events <- event:
	default:
		logger.Warn("realtime event dropped, hub buffer full", "channel", event.Channel)
	}
}

// UserChannel returns the channel name a user's own events go to.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// BookingChannel returns the channel name for a booking's subscribers.
func BookingChannel(bookingID int64) string {
	return fmt.Sprintf("booking_%d", bookingID)
}

func (c *Client) subscribed(channel string) bool {
	if channel == UserChannel(c.UserID) {
		return true
	}
	return c.channels[channel]
}

// Subscribe adds the client to a named channel.
func (c *Client) Subscribe(channel string) {
	c.hub.mutex.Lock()
	c.channels[channel] = true
	c.hub.mutex.Unlock()
}

// NewClient wires a websocket connection into the hub.
func (h *Hub) NewClient(userID int64, conn *websocket.Conn) *Client {
	client := &Client{
		UserID:   userID,
		Conn:     conn,
		Send:     make(chan []byte, 16),
		channels: make(map[string]bool),
		hub:      h,
	}
	h.register <- client
	return client
}

// WritePump flushes queued events to the connection until the send
// channel closes.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

// ReadPump consumes subscribe requests from the client until the
// connection drops, then unregisters.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		var req struct {
			Subscribe string `json:"subscribe"`
		}
		if err := json.Unmarshal(message, &req); err != nil {
			continue
		}
		if req.Subscribe != "" {
			c.Subscribe(req.Subscribe)
		}
	}
}
