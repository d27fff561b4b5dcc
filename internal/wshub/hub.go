package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// ClientMessage is the JSON structure received from clients. Type is one of
// "lock", "unlock", "mode", "click". Dir carries the camera's aim direction
// for clicks; Duration carries the preset for mode changes.
type ClientMessage struct {
	Type     string     `json:"t"`
	Dir      [3]float64 `json:"d,omitempty"`
	Duration int        `json:"sec,omitempty"`
}

// TargetMessage describes one spawned target for the renderer.
type TargetMessage struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"r"`
	Color  string  `json:"c"`
}

// HUDMessage is the per-tick display state.
type HUDMessage struct {
	TimeLeft float64 `json:"tl"`
	Score    int     `json:"s"`
	CPS      float64 `json:"cps"`
	Accuracy int     `json:"acc"`
}

// ServerMessage is the JSON structure sent to clients. Type is one of
// "spawn", "despawn", "hud", "unlock".
type ServerMessage struct {
	Type     string         `json:"t"`
	Target   *TargetMessage `json:"target,omitempty"`
	RemoveID int            `json:"rm,omitempty"`
	HUD      *HUDMessage    `json:"hud,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	PlayerID string
	Conn     *websocket.Conn
	Send     chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub manages the WebSocket connections of one session. Usually a single
// client; reconnects and spectator tabs register alongside.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.PlayerID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[playerID]; ok {
		close(c.Send)
		delete(h.clients, playerID)
	}
}

// Broadcast sends a message to every client. Non-blocking: drops if a send
// channel is full.
func (h *Hub) Broadcast(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}

// Len returns the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
